package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/matside/pkg/model"
)

// Memory is a process-local repository
type Memory struct {
	mu      sync.RWMutex
	records map[model.Category][]*model.Record
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[model.Category][]*model.Record),
	}
}

func (r *Memory) PutRecord(ctx context.Context, record *model.Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Category] = append(r.records[record.Category], record)
	return nil
}

func (r *Memory) ListRecords(ctx context.Context, category model.Category, limit int) ([]*model.Record, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored := r.records[category]
	records := make([]*model.Record, len(stored))
	// newest insert first, then a stable sort keeps it first among equal timestamps
	for i, rec := range stored {
		records[len(stored)-1-i] = rec
	}
	r.mu.RUnlock()

	slices.SortStableFunc(records, func(a, b *model.Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *Memory) Close() error {
	return nil
}
