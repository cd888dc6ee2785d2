package repository

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
)

var (
	ErrInvalidRecord = goerr.New("invalid record")
)

// Repository stores category records. Records are append-only.
type Repository interface {
	// PutRecord saves a record under its category
	PutRecord(ctx context.Context, record *model.Record) error

	// ListRecords returns records of a category, latest first. limit <= 0 means all.
	ListRecords(ctx context.Context, category model.Category, limit int) ([]*model.Record, error)

	// Close releases the underlying client
	Close() error
}

func validateRecord(record *model.Record) error {
	if record == nil {
		return goerr.Wrap(ErrInvalidRecord, "record is nil")
	}
	if record.ID == "" {
		return goerr.Wrap(ErrInvalidRecord, "record ID is empty")
	}
	if err := record.Category.Validate(); err != nil {
		return goerr.Wrap(err, "record has invalid category", goerr.V("id", record.ID))
	}
	return nil
}
