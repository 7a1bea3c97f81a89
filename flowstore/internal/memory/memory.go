// Package memory implements an in-process flow storage driver.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
)

// FlowStorageDriver keeps flows and sessions in maps. Expired entries are
// dropped whenever a new entry is written.
type FlowStorageDriver struct {
	mu       sync.RWMutex
	flows    map[string]dbtype.Flow
	sessions map[string]dbtype.Session
	now      func() time.Time
}

// NewFlowStorageDriver creates a new FlowStorageDriver
func NewFlowStorageDriver() *FlowStorageDriver {
	return &FlowStorageDriver{
		flows:    make(map[string]dbtype.Flow),
		sessions: make(map[string]dbtype.Session),
		now:      time.Now,
	}
}

// InsertFlow stores the flow, replacing any flow with the same ID
func (d *FlowStorageDriver) InsertFlow(_ context.Context, flow *dbtype.Flow) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prune()
	d.flows[flow.ID] = *flow

	return nil
}

// Flow returns the flow for the given ID
func (d *FlowStorageDriver) Flow(_ context.Context, id string) (*dbtype.Flow, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	f, ok := d.flows[id]
	if !ok {
		return nil, httpio.NewNotFoundMessagef("flow %s not found", id)
	}

	return &f, nil
}

// DeleteFlow removes the flow for the given ID
func (d *FlowStorageDriver) DeleteFlow(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.flows, id)

	return nil
}

// UpsertSession stores the session, replacing any session with the same ID
func (d *FlowStorageDriver) UpsertSession(_ context.Context, session *dbtype.Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prune()
	d.sessions[session.ID] = *session

	return nil
}

// Session returns the session for the given ID
func (d *FlowStorageDriver) Session(_ context.Context, id string) (*dbtype.Session, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.sessions[id]
	if !ok {
		return nil, httpio.NewNotFoundMessagef("session %s not found", id)
	}

	return &s, nil
}

// DeleteSession removes the session for the given ID
func (d *FlowStorageDriver) DeleteSession(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.sessions, id)

	return nil
}

// prune must be called with the write lock held
func (d *FlowStorageDriver) prune() {
	now := d.now()
	for id, f := range d.flows {
		if !now.Before(f.ExpiresAt) {
			delete(d.flows, id)
		}
	}
	for id, s := range d.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(d.sessions, id)
		}
	}
}
