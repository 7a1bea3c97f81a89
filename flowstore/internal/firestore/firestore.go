// Package firestore provides the flow storage driver for Cloud Firestore.
package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cccteam/httpio"
	"github.com/cccteam/loginflow/flowstore/internal/dbtype"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	name = "github.com/cccteam/loginflow/flowstore/internal/firestore"

	// maxBatchSize is the Firestore limit on writes per batch
	maxBatchSize = 500
)

// FlowStorageDriver keeps flows and sessions as documents keyed by correlation id.
type FlowStorageDriver struct {
	client            *firestore.Client
	flowCollection    string
	sessionCollection string
}

// NewFlowStorageDriver creates a new FlowStorageDriver
func NewFlowStorageDriver(client *firestore.Client) *FlowStorageDriver {
	return &FlowStorageDriver{
		client:            client,
		flowCollection:    "authFlows",
		sessionCollection: "authSessions",
	}
}

// InsertFlow writes the flow document, replacing any existing one
func (d *FlowStorageDriver) InsertFlow(ctx context.Context, flow *dbtype.Flow) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.InsertFlow()")
	defer span.End()

	if err := d.prune(ctx, d.flowCollection); err != nil {
		return err
	}

	if _, err := d.client.Collection(d.flowCollection).Doc(flow.ID).Set(ctx, flow); err != nil {
		return errors.Wrap(err, "firestore.DocumentRef.Set()")
	}

	return nil
}

// Flow returns the flow for the given ID
func (d *FlowStorageDriver) Flow(ctx context.Context, id string) (*dbtype.Flow, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Flow()")
	defer span.End()

	doc, err := d.client.Collection(d.flowCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, httpio.NewNotFoundMessagef("flow %q not found", id)
		}

		return nil, errors.Wrap(err, "firestore.DocumentRef.Get()")
	}

	flow := &dbtype.Flow{}
	if err := doc.DataTo(flow); err != nil {
		return nil, errors.Wrap(err, "firestore.DocumentSnapshot.DataTo()")
	}

	return flow, nil
}

// DeleteFlow removes the flow document
func (d *FlowStorageDriver) DeleteFlow(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteFlow()")
	defer span.End()

	if _, err := d.client.Collection(d.flowCollection).Doc(id).Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		return errors.Wrap(err, "firestore.DocumentRef.Delete()")
	}

	return nil
}

// UpsertSession writes the session document, replacing any existing one
func (d *FlowStorageDriver) UpsertSession(ctx context.Context, session *dbtype.Session) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.UpsertSession()")
	defer span.End()

	if err := d.prune(ctx, d.sessionCollection); err != nil {
		return err
	}

	if _, err := d.client.Collection(d.sessionCollection).Doc(session.ID).Set(ctx, session); err != nil {
		return errors.Wrap(err, "firestore.DocumentRef.Set()")
	}

	return nil
}

// Session returns the session for the given ID
func (d *FlowStorageDriver) Session(ctx context.Context, id string) (*dbtype.Session, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.Session()")
	defer span.End()

	doc, err := d.client.Collection(d.sessionCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, httpio.NewNotFoundMessagef("session %q not found", id)
		}

		return nil, errors.Wrap(err, "firestore.DocumentRef.Get()")
	}

	session := &dbtype.Session{}
	if err := doc.DataTo(session); err != nil {
		return nil, errors.Wrap(err, "firestore.DocumentSnapshot.DataTo()")
	}

	return session, nil
}

// DeleteSession removes the session document
func (d *FlowStorageDriver) DeleteSession(ctx context.Context, id string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "FlowStorageDriver.DeleteSession()")
	defer span.End()

	if _, err := d.client.Collection(d.sessionCollection).Doc(id).Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		return errors.Wrap(err, "firestore.DocumentRef.Delete()")
	}

	return nil
}

// prune deletes up to one batch of expired documents from collection.
// Anything left over is removed by later writes.
func (d *FlowStorageDriver) prune(ctx context.Context, collection string) error {
	iter := d.client.Collection(collection).
		Where("expiresAt", "<=", time.Now()).
		Limit(maxBatchSize).
		Documents(ctx)
	defer iter.Stop()

	batch := d.client.Batch()
	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "firestore.DocumentIterator.Next()")
		}
		batch.Delete(doc.Ref)
		count++
	}

	if count > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return errors.Wrap(err, "firestore.WriteBatch.Commit()")
		}
	}

	return nil
}
