package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/google/go-cmp/cmp"
)

func TestClient_FullMigration(t *testing.T) {
	t.Parallel()

	db, err := prepareDatabase(context.Background(), t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}

	if err := db.MigrateDown(migrations); err != nil {
		t.Fatalf("db.MigrateDown() error = %v", err)
	}
}

func TestFlowStorageDriver_InsertFlow(t *testing.T) {
	t.Parallel()

	created := time.Date(2099, 1, 2, 3, 4, 5, 0, time.UTC)
	flow := &dbtype.Flow{
		ID:           "de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5",
		State:        "s1",
		Nonce:        "n1",
		PkceVerifier: "v1",
		CreatedAt:    created,
		ExpiresAt:    created.Add(15 * time.Minute),
	}

	tests := []struct {
		name           string
		prepare        func(context.Context, *FlowStorageDriver) error
		flow           *dbtype.Flow
		preAssertions  []string
		postAssertions []string
	}{
		{
			name:          "success inserting flow",
			flow:          flow,
			preAssertions: []string{`SELECT COUNT(*) = 0 FROM "AuthFlows"`},
			postAssertions: []string{
				`SELECT COUNT(*) = 1 FROM "AuthFlows"
				 WHERE "Id" = 'de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5'
					 AND "State" = 's1'
					 AND "Nonce" = 'n1'
					 AND "PkceVerifier" = 'v1'
					 AND "CreatedAt" = '2099-01-02 03:04:05+00:00'
					 AND "ExpiresAt" = '2099-01-02 03:19:05+00:00'`,
			},
		},
		{
			name: "replaces existing flow",
			prepare: func(ctx context.Context, d *FlowStorageDriver) error {
				return d.InsertFlow(ctx, &dbtype.Flow{ID: flow.ID, State: "old", Nonce: "old", PkceVerifier: "old", CreatedAt: created, ExpiresAt: created})
			},
			flow:          flow,
			preAssertions: []string{`SELECT COUNT(*) = 1 FROM "AuthFlows" WHERE "State" = 'old'`},
			postAssertions: []string{
				`SELECT COUNT(*) = 1 FROM "AuthFlows"`,
				`SELECT COUNT(*) = 1 FROM "AuthFlows" WHERE "State" = 's1'`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			conn, err := prepareDatabase(ctx, t, migrations)
			if err != nil {
				t.Fatalf("prepareDatabase() error = %v", err)
			}
			d := NewFlowStorageDriver(conn.Pool)
			if tt.prepare != nil {
				if err := tt.prepare(ctx, d); err != nil {
					t.Fatalf("prepare() error = %v", err)
				}
			}

			runAssertions(ctx, t, conn.Pool, tt.preAssertions)

			if err := d.InsertFlow(ctx, tt.flow); err != nil {
				t.Fatalf("FlowStorageDriver.InsertFlow() error = %v", err)
			}

			runAssertions(ctx, t, conn.Pool, tt.postAssertions)
		})
	}
}

func TestFlowStorageDriver_Flow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	conn, err := prepareDatabase(ctx, t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}
	d := NewFlowStorageDriver(conn.Pool)

	created := time.Date(2099, 1, 2, 3, 4, 5, 0, time.UTC)
	want := &dbtype.Flow{
		ID:           "de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5",
		State:        "s1",
		Nonce:        "n1",
		PkceVerifier: "v1",
		CreatedAt:    created,
		ExpiresAt:    created.Add(15 * time.Minute),
	}
	if err := d.InsertFlow(ctx, want); err != nil {
		t.Fatalf("FlowStorageDriver.InsertFlow() error = %v", err)
	}

	got, err := d.Flow(ctx, want.ID)
	if err != nil {
		t.Fatalf("FlowStorageDriver.Flow() error = %v", err)
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("FlowStorageDriver.Flow() mismatch (-want +got):\n%s", diff)
	}

	if err := d.DeleteFlow(ctx, want.ID); err != nil {
		t.Fatalf("FlowStorageDriver.DeleteFlow() error = %v", err)
	}
	if _, err := d.Flow(ctx, want.ID); !httpio.HasNotFound(err) {
		t.Errorf("FlowStorageDriver.Flow() error = %v, want not found", err)
	}
}

func TestFlowStorageDriver_Session(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	conn, err := prepareDatabase(ctx, t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}
	d := NewFlowStorageDriver(conn.Pool)

	if _, err := d.Session(ctx, "abc"); !httpio.HasNotFound(err) {
		t.Fatalf("FlowStorageDriver.Session() error = %v, want not found", err)
	}

	created := time.Date(2099, 1, 2, 3, 4, 5, 0, time.UTC)
	want := &dbtype.Session{
		ID:           "abc",
		Subject:      "sub-1",
		Username:     "alice",
		SessionState: "ss-1",
		SealedTokens: "sealed",
		CreatedAt:    created,
		ExpiresAt:    created.Add(8 * time.Hour),
	}
	if err := d.UpsertSession(ctx, want); err != nil {
		t.Fatalf("FlowStorageDriver.UpsertSession() error = %v", err)
	}
	want.SealedTokens = "resealed"
	if err := d.UpsertSession(ctx, want); err != nil {
		t.Fatalf("FlowStorageDriver.UpsertSession() error = %v", err)
	}

	runAssertions(ctx, t, conn.Pool, []string{
		`SELECT COUNT(*) = 1 FROM "AuthSessions" WHERE "Id" = 'abc' AND "SealedTokens" = 'resealed'`,
	})

	got, err := d.Session(ctx, "abc")
	if err != nil {
		t.Fatalf("FlowStorageDriver.Session() error = %v", err)
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("FlowStorageDriver.Session() mismatch (-want +got):\n%s", diff)
	}

	if err := d.DeleteSession(ctx, "abc"); err != nil {
		t.Fatalf("FlowStorageDriver.DeleteSession() error = %v", err)
	}
	runAssertions(ctx, t, conn.Pool, []string{`SELECT COUNT(*) = 0 FROM "AuthSessions"`})
}

func TestFlowStorageDriver_PrunesExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	conn, err := prepareDatabase(ctx, t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}
	d := NewFlowStorageDriver(conn.Pool)

	expired := time.Now().Add(-time.Hour).UTC()
	if err := d.InsertFlow(ctx, &dbtype.Flow{ID: "old", CreatedAt: expired, ExpiresAt: expired}); err != nil {
		t.Fatalf("FlowStorageDriver.InsertFlow() error = %v", err)
	}
	if err := d.UpsertSession(ctx, &dbtype.Session{ID: "old", CreatedAt: expired, ExpiresAt: expired}); err != nil {
		t.Fatalf("FlowStorageDriver.UpsertSession() error = %v", err)
	}
	runAssertions(ctx, t, conn.Pool, []string{
		`SELECT COUNT(*) = 1 FROM "AuthFlows" WHERE "Id" = 'old'`,
		`SELECT COUNT(*) = 1 FROM "AuthSessions" WHERE "Id" = 'old'`,
	})

	live := time.Now().Add(time.Hour).UTC()
	if err := d.InsertFlow(ctx, &dbtype.Flow{ID: "new", CreatedAt: expired, ExpiresAt: live}); err != nil {
		t.Fatalf("FlowStorageDriver.InsertFlow() error = %v", err)
	}
	if err := d.UpsertSession(ctx, &dbtype.Session{ID: "new", CreatedAt: expired, ExpiresAt: live}); err != nil {
		t.Fatalf("FlowStorageDriver.UpsertSession() error = %v", err)
	}

	runAssertions(ctx, t, conn.Pool, []string{
		`SELECT COUNT(*) = 0 FROM "AuthFlows" WHERE "Id" = 'old'`,
		`SELECT COUNT(*) = 0 FROM "AuthSessions" WHERE "Id" = 'old'`,
		`SELECT COUNT(*) = 1 FROM "AuthFlows" WHERE "Id" = 'new'`,
		`SELECT COUNT(*) = 1 FROM "AuthSessions" WHERE "Id" = 'new'`,
	})
}
