// Command loginflow serves the login, logout and status routes.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/spanner"
	"github.com/cccteam/logger"
	"github.com/cccteam/loginflow"
	"github.com/cccteam/loginflow/config"
	"github.com/cccteam/loginflow/flowstore"
	"github.com/cccteam/loginflow/idp"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Ctx(ctx).Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "config.Load()")
	}
	if err := cfg.Validate(); err != nil {
		// Keep serving so every route reports config_missing.
		logger.Ctx(ctx).Error(err)
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.NewConsoleExporter().Middleware())
	loginflow.New(cfg, idp.New(cfg, store)).Mount(r)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Ctx(ctx).Infof("listening on %s (storage: %s)", cfg.ListenAddr, cfg.Storage)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http.Server.ListenAndServe()")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "http.Server.Shutdown()")
		}
	}

	return nil
}

func newStore(ctx context.Context, cfg *config.Config) (flowstore.Store, func(), error) {
	codec, err := flowstore.NewCodec(cfg.TokenKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "flowstore.NewCodec()")
	}

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "pgxpool.New()")
		}

		return flowstore.NewPostgres(pool, codec), pool.Close, nil
	case config.StorageSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase, clientOptions(cfg)...)
		if err != nil {
			return nil, nil, errors.Wrap(err, "spanner.NewClient()")
		}

		return flowstore.NewSpanner(client, codec), client.Close, nil
	case config.StorageFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject, clientOptions(cfg)...)
		if err != nil {
			return nil, nil, errors.Wrap(err, "firestore.NewClient()")
		}

		return flowstore.NewFirestore(client, codec), func() { _ = client.Close() }, nil
	default:
		return flowstore.NewMemory(codec), func() {}, nil
	}
}

func clientOptions(cfg *config.Config) []option.ClientOption {
	if cfg.GoogleCredentialsFile == "" {
		return nil
	}

	return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleCredentialsFile)}
}
