package spanner

import (
	"context"
	"testing"
	"time"

	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/google/go-cmp/cmp"
)

func TestFlowStorageDriver_Flow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := prepareDatabase(ctx, t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}
	d := NewFlowStorageDriver(db.Client)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	want := &dbtype.Flow{
		ID:           "de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5",
		State:        "s1",
		Nonce:        "n1",
		PkceVerifier: "v1",
		CreatedAt:    created,
		ExpiresAt:    created.Add(15 * time.Minute),
	}

	runAssertions(ctx, t, db.Client, []string{`SELECT COUNT(*) = 0 FROM AuthFlows`})

	if err := d.InsertFlow(ctx, want); err != nil {
		t.Fatalf("FlowStorageDriver.InsertFlow() error = %v", err)
	}
	if err := d.InsertFlow(ctx, want); err != nil {
		t.Fatalf("FlowStorageDriver.InsertFlow() second call error = %v", err)
	}

	runAssertions(ctx, t, db.Client, []string{
		`SELECT COUNT(*) = 1 FROM AuthFlows WHERE Id = 'de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5' AND State = 's1'`,
	})

	got, err := d.Flow(ctx, want.ID)
	if err != nil {
		t.Fatalf("FlowStorageDriver.Flow() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
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

	db, err := prepareDatabase(ctx, t, migrations)
	if err != nil {
		t.Fatalf("prepareDatabase() error = %v", err)
	}
	d := NewFlowStorageDriver(db.Client)

	if _, err := d.Session(ctx, "abc"); !httpio.HasNotFound(err) {
		t.Fatalf("FlowStorageDriver.Session() error = %v, want not found", err)
	}

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
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

	got, err := d.Session(ctx, "abc")
	if err != nil {
		t.Fatalf("FlowStorageDriver.Session() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FlowStorageDriver.Session() mismatch (-want +got):\n%s", diff)
	}

	if err := d.DeleteSession(ctx, "abc"); err != nil {
		t.Fatalf("FlowStorageDriver.DeleteSession() error = %v", err)
	}
	if err := d.DeleteSession(ctx, "abc"); err != nil {
		t.Errorf("FlowStorageDriver.DeleteSession() on missing row error = %v", err)
	}
	runAssertions(ctx, t, db.Client, []string{`SELECT COUNT(*) = 0 FROM AuthSessions`})
}
