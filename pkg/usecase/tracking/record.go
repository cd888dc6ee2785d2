package tracking

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/insight"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

// RecordResult is a stored record with the insight text generated for it
type RecordResult struct {
	Record  *model.Record
	Insight string
}

// Record persists data for category, then asks the generator for insights on
// it. The record stays stored even when generation fails.
func (u *UseCase) Record(
	ctx context.Context,
	category model.Category,
	data map[string]any,
) (*RecordResult, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	record := model.NewRecord(category, data)
	record.CreatedAt = u.now()

	if err := u.repo.PutRecord(ctx, record); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrPersistence, err), "failed to save record",
			goerr.V("category", category))
	}

	logging.From(ctx).Debug("record saved", "id", record.ID, "category", category)

	prompt, err := insight.RecordPrompt(category, record.Data)
	if err != nil {
		return nil, err
	}

	text, err := u.generator.Submit(ctx, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate record insight",
			goerr.V("id", record.ID),
			goerr.V("category", category))
	}

	return &RecordResult{
		Record:  record,
		Insight: text,
	}, nil
}
