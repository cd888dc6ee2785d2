package tracking

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

// Import stores records as they are, without generating insights. A missing
// ID or timestamp is filled in. It stops at the first failure and returns the
// number of records stored before it.
func (u *UseCase) Import(ctx context.Context, records []*model.Record) (int, error) {
	for i, record := range records {
		if record == nil {
			return i, goerr.New("nil record in import", goerr.V("index", i))
		}
		if err := record.Category.Validate(); err != nil {
			return i, goerr.Wrap(err, "invalid record in import", goerr.V("index", i))
		}

		if record.ID == "" {
			record.ID = model.NewRecordID()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = u.now()
		}
		if record.Data == nil {
			record.Data = map[string]any{}
		}

		if err := u.repo.PutRecord(ctx, record); err != nil {
			return i, goerr.Wrap(errors.Join(ErrPersistence, err), "failed to import record",
				goerr.V("index", i),
				goerr.V("id", record.ID))
		}
	}

	logging.From(ctx).Info("records imported", "count", len(records))
	return len(records), nil
}
