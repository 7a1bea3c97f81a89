package memory

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

	now := time.Date(2025, 4, 4, 12, 0, 0, 0, time.UTC)
	flow := &dbtype.Flow{
		ID:           "de6e1a12-2d4d-4c4d-aaf1-d82cb9a9eff5",
		State:        "state",
		Nonce:        "nonce",
		PkceVerifier: "verifier",
		CreatedAt:    now,
		ExpiresAt:    now.Add(15 * time.Minute),
	}

	tests := []struct {
		name         string
		prepare      func(context.Context, *FlowStorageDriver)
		id           string
		want         *dbtype.Flow
		wantNotFound bool
	}{
		{
			name: "found",
			prepare: func(ctx context.Context, d *FlowStorageDriver) {
				if err := d.InsertFlow(ctx, flow); err != nil {
					t.Fatalf("InsertFlow() error = %v", err)
				}
			},
			id:   flow.ID,
			want: flow,
		},
		{
			name:         "not found",
			id:           flow.ID,
			wantNotFound: true,
		},
		{
			name: "deleted",
			prepare: func(ctx context.Context, d *FlowStorageDriver) {
				if err := d.InsertFlow(ctx, flow); err != nil {
					t.Fatalf("InsertFlow() error = %v", err)
				}
				if err := d.DeleteFlow(ctx, flow.ID); err != nil {
					t.Fatalf("DeleteFlow() error = %v", err)
				}
			},
			id:           flow.ID,
			wantNotFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			d := NewFlowStorageDriver()
			d.now = func() time.Time { return now }
			if tt.prepare != nil {
				tt.prepare(ctx, d)
			}

			got, err := d.Flow(ctx, tt.id)
			if tt.wantNotFound {
				if !httpio.HasNotFound(err) {
					t.Fatalf("Flow() error = %v, want not found", err)
				}

				return
			}
			if err != nil {
				t.Fatalf("Flow() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flow() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlowStorageDriver_Session(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2025, 4, 4, 12, 0, 0, 0, time.UTC)
	d := NewFlowStorageDriver()
	d.now = func() time.Time { return now }

	session := &dbtype.Session{
		ID:           "abc",
		Subject:      "sub-1",
		Username:     "alice",
		SealedTokens: "sealed",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
	if err := d.UpsertSession(ctx, session); err != nil {
		t.Fatalf("UpsertSession() error = %v", err)
	}

	got, err := d.Session(ctx, "abc")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if diff := cmp.Diff(session, got); diff != "" {
		t.Errorf("Session() mismatch (-want +got):\n%s", diff)
	}

	if err := d.DeleteSession(ctx, "abc"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := d.Session(ctx, "abc"); !httpio.HasNotFound(err) {
		t.Errorf("Session() error = %v, want not found", err)
	}
}

func TestFlowStorageDriver_PrunesExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2025, 4, 4, 12, 0, 0, 0, time.UTC)
	d := NewFlowStorageDriver()
	d.now = func() time.Time { return now }

	if err := d.InsertFlow(ctx, &dbtype.Flow{ID: "old", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("InsertFlow() error = %v", err)
	}
	if err := d.UpsertSession(ctx, &dbtype.Session{ID: "old", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("UpsertSession() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if err := d.InsertFlow(ctx, &dbtype.Flow{ID: "new", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("InsertFlow() error = %v", err)
	}

	if _, err := d.Flow(ctx, "old"); !httpio.HasNotFound(err) {
		t.Errorf("Flow(old) error = %v, want not found", err)
	}
	if _, err := d.Session(ctx, "old"); !httpio.HasNotFound(err) {
		t.Errorf("Session(old) error = %v, want not found", err)
	}
	if _, err := d.Flow(ctx, "new"); err != nil {
		t.Errorf("Flow(new) error = %v", err)
	}
}
