package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore keeps each category in its own collection, document ID = record ID
type Firestore struct {
	client *firestore.Client
}

type recordDoc struct {
	ID        string         `firestore:"ID"`
	Category  string         `firestore:"Category"`
	Data      map[string]any `firestore:"Data"`
	CreatedAt time.Time      `firestore:"CreatedAt"`
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) PutRecord(ctx context.Context, record *model.Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	doc := &recordDoc{
		ID:        string(record.ID),
		Category:  string(record.Category),
		Data:      record.Data,
		CreatedAt: record.CreatedAt,
	}

	if _, err := r.client.Collection(string(record.Category)).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put record", goerr.V("id", record.ID), goerr.V("category", record.Category))
	}

	return nil
}

func (r *Firestore) ListRecords(ctx context.Context, category model.Category, limit int) ([]*model.Record, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	query := r.client.Collection(string(category)).OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	records := []*model.Record{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate records", goerr.V("category", category))
		}

		var doc recordDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode record", goerr.V("doc_id", snap.Ref.ID))
		}

		data := doc.Data
		if data == nil {
			data = map[string]any{}
		}
		records = append(records, &model.Record{
			ID:        model.RecordID(doc.ID),
			Category:  model.Category(doc.Category),
			Data:      data,
			CreatedAt: doc.CreatedAt,
		})
	}

	return records, nil
}

func (r *Firestore) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
