package flowstore

import (
	"context"
	"time"

	cloudfirestore "cloud.google.com/go/firestore"
	cloudspanner "cloud.google.com/go/spanner"
	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/cccteam/loginflow/flowstore/internal/firestore"
	"github.com/cccteam/loginflow/flowstore/internal/memory"
	"github.com/cccteam/loginflow/flowstore/internal/postgres"
	"github.com/cccteam/loginflow/flowstore/internal/spanner"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/loginflow/flowstore"

// Queryer is the Postgres connection used by NewPostgres, satisfied by *pgxpool.Pool
type Queryer = postgres.Queryer

// FlowStore seals tokens and enforces expiry on top of a storage driver.
type FlowStore struct {
	db    db
	codec *Codec
	now   func() time.Time
}

// NewMemory creates a FlowStore that keeps state in process memory.
func NewMemory(codec *Codec) *FlowStore {
	return newFlowStore(memory.NewFlowStorageDriver(), codec)
}

// NewPostgres creates a FlowStore backed by PostgreSQL.
func NewPostgres(conn Queryer, codec *Codec) *FlowStore {
	return newFlowStore(postgres.NewFlowStorageDriver(conn), codec)
}

// NewSpanner creates a FlowStore backed by Spanner.
func NewSpanner(client *cloudspanner.Client, codec *Codec) *FlowStore {
	return newFlowStore(spanner.NewFlowStorageDriver(client), codec)
}

// NewFirestore creates a FlowStore backed by Firestore.
func NewFirestore(client *cloudfirestore.Client, codec *Codec) *FlowStore {
	return newFlowStore(firestore.NewFlowStorageDriver(client), codec)
}

func newFlowStore(db db, codec *Codec) *FlowStore {
	return &FlowStore{
		db:    db,
		codec: codec,
		now:   time.Now,
	}
}

// IsNotFound reports whether err means the flow or session does not exist or has expired.
func IsNotFound(err error) bool {
	return httpio.HasNotFound(err)
}

// SaveFlow stores a pending flow, replacing any earlier flow for the same correlation id.
func (s *FlowStore) SaveFlow(ctx context.Context, flow *Flow) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.SaveFlow()")
	defer span.End()

	f := &dbtype.Flow{
		ID:           flow.CorrelationID,
		State:        flow.State,
		Nonce:        flow.Nonce,
		PkceVerifier: flow.PKCEVerifier,
		CreatedAt:    flow.CreatedAt,
		ExpiresAt:    flow.ExpiresAt,
	}

	if err := s.db.InsertFlow(ctx, f); err != nil {
		return errors.Wrap(err, "db.InsertFlow()")
	}

	return nil
}

// Flow returns the pending flow. An expired flow is reported as not found.
func (s *FlowStore) Flow(ctx context.Context, correlationID string) (*Flow, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.Flow()")
	defer span.End()

	f, err := s.db.Flow(ctx, correlationID)
	if err != nil {
		return nil, errors.Wrap(err, "db.Flow()")
	}
	if !s.now().Before(f.ExpiresAt) {
		return nil, httpio.NewNotFoundMessagef("flow %s expired", correlationID)
	}

	return &Flow{
		CorrelationID: f.ID,
		State:         f.State,
		Nonce:         f.Nonce,
		PKCEVerifier:  f.PkceVerifier,
		CreatedAt:     f.CreatedAt,
		ExpiresAt:     f.ExpiresAt,
	}, nil
}

// DeleteFlow removes the pending flow.
func (s *FlowStore) DeleteFlow(ctx context.Context, correlationID string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.DeleteFlow()")
	defer span.End()

	if err := s.db.DeleteFlow(ctx, correlationID); err != nil {
		return errors.Wrap(err, "db.DeleteFlow()")
	}

	return nil
}

// SaveSession seals the session tokens and stores the session.
func (s *FlowStore) SaveSession(ctx context.Context, session *Session) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.SaveSession()")
	defer span.End()

	sealed, err := s.codec.Seal(session.CorrelationID, &session.Tokens)
	if err != nil {
		return errors.Wrap(err, "Codec.Seal()")
	}

	sess := &dbtype.Session{
		ID:           session.CorrelationID,
		Subject:      session.Subject,
		Username:     session.Username,
		SessionState: session.SessionState,
		SealedTokens: sealed,
		CreatedAt:    session.CreatedAt,
		ExpiresAt:    session.ExpiresAt,
	}

	if err := s.db.UpsertSession(ctx, sess); err != nil {
		return errors.Wrap(err, "db.UpsertSession()")
	}

	return nil
}

// Session returns the session with its tokens opened. An expired session is reported as not found.
func (s *FlowStore) Session(ctx context.Context, correlationID string) (*Session, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.Session()")
	defer span.End()

	sess, err := s.db.Session(ctx, correlationID)
	if err != nil {
		return nil, errors.Wrap(err, "db.Session()")
	}
	if !s.now().Before(sess.ExpiresAt) {
		return nil, httpio.NewNotFoundMessagef("session %s expired", correlationID)
	}

	tokens, err := s.codec.Open(correlationID, sess.SealedTokens)
	if err != nil {
		return nil, errors.Wrap(err, "Codec.Open()")
	}

	return &Session{
		CorrelationID: sess.ID,
		Subject:       sess.Subject,
		Username:      sess.Username,
		SessionState:  sess.SessionState,
		Tokens:        *tokens,
		CreatedAt:     sess.CreatedAt,
		ExpiresAt:     sess.ExpiresAt,
	}, nil
}

// DestroySession removes the session.
func (s *FlowStore) DestroySession(ctx context.Context, correlationID string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStore.DestroySession()")
	defer span.End()

	if err := s.db.DeleteSession(ctx, correlationID); err != nil {
		return errors.Wrap(err, "db.DeleteSession()")
	}

	return nil
}
