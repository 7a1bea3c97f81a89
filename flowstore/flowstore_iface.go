// Package flowstore persists provider-side login state keyed by the session correlation id.
// There are drivers for memory, Postgres, Spanner and Firestore.
package flowstore

import (
	"context"

	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/cccteam/loginflow/flowstore/internal/firestore"
	"github.com/cccteam/loginflow/flowstore/internal/memory"
	"github.com/cccteam/loginflow/flowstore/internal/postgres"
	"github.com/cccteam/loginflow/flowstore/internal/spanner"
)

var _ Store = (*FlowStore)(nil)

// Store defines the storage used by the identity provider client.
type Store interface {
	SaveFlow(ctx context.Context, flow *Flow) error
	Flow(ctx context.Context, correlationID string) (*Flow, error)
	DeleteFlow(ctx context.Context, correlationID string) error

	SaveSession(ctx context.Context, session *Session) error
	Session(ctx context.Context, correlationID string) (*Session, error)
	DestroySession(ctx context.Context, correlationID string) error
}

var (
	_ db = (*memory.FlowStorageDriver)(nil)
	_ db = (*postgres.FlowStorageDriver)(nil)
	_ db = (*spanner.FlowStorageDriver)(nil)
	_ db = (*firestore.FlowStorageDriver)(nil)
)

// db defines the operations a storage driver implements.
type db interface {
	// InsertFlow stores a flow, replacing any flow with the same ID.
	InsertFlow(ctx context.Context, flow *dbtype.Flow) error
	// Flow returns the flow for the given ID, or an httpio not found message.
	Flow(ctx context.Context, id string) (*dbtype.Flow, error)
	// DeleteFlow removes a flow. Removing a missing flow is not an error.
	DeleteFlow(ctx context.Context, id string) error

	// UpsertSession stores a session, replacing any session with the same ID.
	UpsertSession(ctx context.Context, session *dbtype.Session) error
	// Session returns the session for the given ID, or an httpio not found message.
	Session(ctx context.Context, id string) (*dbtype.Session, error)
	// DeleteSession removes a session. Removing a missing session is not an error.
	DeleteSession(ctx context.Context, id string) error
}
