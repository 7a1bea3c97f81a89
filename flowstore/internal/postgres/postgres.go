// Package postgres implements the flow storage driver for PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/loginflow/flowstore/internal/postgres"

// FlowStorageDriver represents the flow storage implementation for PostgreSQL.
type FlowStorageDriver struct {
	conn Queryer
}

// NewFlowStorageDriver creates a new FlowStorageDriver
func NewFlowStorageDriver(conn Queryer) *FlowStorageDriver {
	return &FlowStorageDriver{
		conn: conn,
	}
}

// InsertFlow inserts a flow, replacing any flow with the same ID
func (d *FlowStorageDriver) InsertFlow(ctx context.Context, flow *dbtype.Flow) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.InsertFlow()")
	defer span.End()

	query := `
		INSERT INTO "AuthFlows"
			("Id", "State", "Nonce", "PkceVerifier", "CreatedAt", "ExpiresAt")
		VALUES
			($1, $2, $3, $4, $5, $6)
		ON CONFLICT ("Id") DO UPDATE SET
			"State" = EXCLUDED."State",
			"Nonce" = EXCLUDED."Nonce",
			"PkceVerifier" = EXCLUDED."PkceVerifier",
			"CreatedAt" = EXCLUDED."CreatedAt",
			"ExpiresAt" = EXCLUDED."ExpiresAt"
		`

	if err := d.prune(ctx, "AuthFlows"); err != nil {
		return err
	}

	if _, err := d.conn.Exec(ctx, query, flow.ID, flow.State, flow.Nonce, flow.PkceVerifier, flow.CreatedAt, flow.ExpiresAt); err != nil {
		return errors.Wrap(err, "failed to insert into table AuthFlows")
	}

	return nil
}

// Flow returns the flow for the given ID
func (d *FlowStorageDriver) Flow(ctx context.Context, id string) (*dbtype.Flow, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Flow()")
	defer span.End()

	query := `
		SELECT
			"Id", "State", "Nonce", "PkceVerifier", "CreatedAt", "ExpiresAt"
		FROM "AuthFlows"
		WHERE "Id" = $1
	`

	f := &dbtype.Flow{}
	if err := pgxscan.Get(ctx, d.conn, f, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessagef("flow %s not found in database", id)
		}

		return nil, errors.Wrapf(err, "failed to scan row for flow %s", id)
	}

	return f, nil
}

// DeleteFlow removes the flow for the given ID
func (d *FlowStorageDriver) DeleteFlow(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteFlow()")
	defer span.End()

	if _, err := d.conn.Exec(ctx, `DELETE FROM "AuthFlows" WHERE "Id" = $1`, id); err != nil {
		return errors.Wrapf(err, "failed to delete flow %s", id)
	}

	return nil
}

// UpsertSession inserts a session, replacing any session with the same ID
func (d *FlowStorageDriver) UpsertSession(ctx context.Context, session *dbtype.Session) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.UpsertSession()")
	defer span.End()

	query := `
		INSERT INTO "AuthSessions"
			("Id", "Subject", "Username", "SessionState", "SealedTokens", "CreatedAt", "ExpiresAt")
		VALUES
			($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ("Id") DO UPDATE SET
			"Subject" = EXCLUDED."Subject",
			"Username" = EXCLUDED."Username",
			"SessionState" = EXCLUDED."SessionState",
			"SealedTokens" = EXCLUDED."SealedTokens",
			"CreatedAt" = EXCLUDED."CreatedAt",
			"ExpiresAt" = EXCLUDED."ExpiresAt"
		`

	if err := d.prune(ctx, "AuthSessions"); err != nil {
		return err
	}

	if _, err := d.conn.Exec(ctx, query,
		session.ID, session.Subject, session.Username, session.SessionState, session.SealedTokens, session.CreatedAt, session.ExpiresAt,
	); err != nil {
		return errors.Wrap(err, "failed to insert into table AuthSessions")
	}

	return nil
}

// Session returns the session for the given ID
func (d *FlowStorageDriver) Session(ctx context.Context, id string) (*dbtype.Session, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Session()")
	defer span.End()

	query := `
		SELECT
			"Id", "Subject", "Username", "SessionState", "SealedTokens", "CreatedAt", "ExpiresAt"
		FROM "AuthSessions"
		WHERE "Id" = $1
	`

	s := &dbtype.Session{}
	if err := pgxscan.Get(ctx, d.conn, s, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessagef("session %s not found in database", id)
		}

		return nil, errors.Wrapf(err, "failed to scan row for session %s", id)
	}

	return s, nil
}

// DeleteSession removes the session for the given ID
func (d *FlowStorageDriver) DeleteSession(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteSession()")
	defer span.End()

	if _, err := d.conn.Exec(ctx, `DELETE FROM "AuthSessions" WHERE "Id" = $1`, id); err != nil {
		return errors.Wrapf(err, "failed to delete session %s", id)
	}

	return nil
}

// prune removes expired rows from table
func (d *FlowStorageDriver) prune(ctx context.Context, table string) error {
	if _, err := d.conn.Exec(ctx, fmt.Sprintf(`DELETE FROM %q WHERE "ExpiresAt" <= now()`, table)); err != nil {
		return errors.Wrapf(err, "failed to prune table %s", table)
	}

	return nil
}
