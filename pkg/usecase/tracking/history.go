package tracking

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
)

// History returns every record of category, latest first
func (u *UseCase) History(ctx context.Context, category model.Category) ([]*model.Record, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	records, err := u.repo.ListRecords(ctx, category, 0)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrPersistence, err), "failed to fetch history",
			goerr.V("category", category))
	}

	return records, nil
}
