// Package spanner provides the flow storage driver for Spanner.
package spanner

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/cccteam/spxscan"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/loginflow/flowstore/internal/spanner"

// FlowStorageDriver represents the flow storage implementation for Spanner.
type FlowStorageDriver struct {
	spanner          *spanner.Client
	flowTableName    string
	sessionTableName string
}

// NewFlowStorageDriver creates a new FlowStorageDriver
func NewFlowStorageDriver(client *spanner.Client) *FlowStorageDriver {
	return &FlowStorageDriver{
		spanner:          client,
		flowTableName:    "AuthFlows",
		sessionTableName: "AuthSessions",
	}
}

// InsertFlow inserts a flow, replacing any flow with the same ID
func (s *FlowStorageDriver) InsertFlow(ctx context.Context, flow *dbtype.Flow) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.InsertFlow()")
	defer span.End()

	mutation, err := spanner.InsertOrUpdateStruct(s.flowTableName, flow)
	if err != nil {
		return errors.Wrap(err, "spanner.InsertOrUpdateStruct()")
	}
	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}

// Flow returns the flow for the given ID
func (s *FlowStorageDriver) Flow(ctx context.Context, id string) (*dbtype.Flow, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Flow()")
	defer span.End()

	stmt := spanner.NewStatement(`
		SELECT
			Id,
			State,
			Nonce,
			PkceVerifier,
			CreatedAt,
			ExpiresAt
		FROM AuthFlows
		WHERE Id = @id
	`)
	stmt.Params["id"] = id

	flow := &dbtype.Flow{}
	if err := spxscan.Get(ctx, s.spanner.Single(), flow, stmt); err != nil {
		if errors.Is(err, spxscan.ErrNotFound) {
			return nil, httpio.NewNotFoundMessagef("flow %q not found", id)
		}

		return nil, errors.Wrapf(err, "failed to scan row for flow %q", id)
	}

	return flow, nil
}

// DeleteFlow removes the flow for the given ID
func (s *FlowStorageDriver) DeleteFlow(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteFlow()")
	defer span.End()

	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{spanner.Delete(s.flowTableName, spanner.Key{id})}); err != nil {
		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}

// UpsertSession inserts a session, replacing any session with the same ID
func (s *FlowStorageDriver) UpsertSession(ctx context.Context, session *dbtype.Session) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.UpsertSession()")
	defer span.End()

	mutation, err := spanner.InsertOrUpdateStruct(s.sessionTableName, session)
	if err != nil {
		return errors.Wrap(err, "spanner.InsertOrUpdateStruct()")
	}
	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}

// Session returns the session for the given ID
func (s *FlowStorageDriver) Session(ctx context.Context, id string) (*dbtype.Session, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Session()")
	defer span.End()

	stmt := spanner.NewStatement(`
		SELECT
			Id,
			Subject,
			Username,
			SessionState,
			SealedTokens,
			CreatedAt,
			ExpiresAt
		FROM AuthSessions
		WHERE Id = @id
	`)
	stmt.Params["id"] = id

	session := &dbtype.Session{}
	if err := spxscan.Get(ctx, s.spanner.Single(), session, stmt); err != nil {
		if errors.Is(err, spxscan.ErrNotFound) {
			return nil, httpio.NewNotFoundMessagef("session %q not found", id)
		}

		return nil, errors.Wrapf(err, "failed to scan row for session %q", id)
	}

	return session, nil
}

// DeleteSession removes the session for the given ID
func (s *FlowStorageDriver) DeleteSession(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteSession()")
	defer span.End()

	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{spanner.Delete(s.sessionTableName, spanner.Key{id})}); err != nil {
		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}
