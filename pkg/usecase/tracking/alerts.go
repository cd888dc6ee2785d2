package tracking

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/alerting"
	"github.com/m-mizutani/matside/pkg/model"
)

// Alerts loads the history of every category and evaluates the alert rules
func (u *UseCase) Alerts(ctx context.Context) ([]*model.Alert, error) {
	history := make(map[model.Category][]*model.Record, len(model.AllCategories()))

	for _, category := range model.AllCategories() {
		records, err := u.repo.ListRecords(ctx, category, 0)
		if err != nil {
			return nil, goerr.Wrap(errors.Join(ErrPersistence, err), "failed to load history for alerts",
				goerr.V("category", category))
		}
		history[category] = records
	}

	return alerting.Analyze(history), nil
}
