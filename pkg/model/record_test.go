package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/model"
)

func TestCategoryValidate(t *testing.T) {
	for _, c := range model.AllCategories() {
		gt.NoError(t, c.Validate())
	}

	err := model.Category("history").Validate()
	gt.True(t, errors.Is(err, model.ErrInvalidCategory))
	gt.A(t, model.AllCategories()).Length(6)
}

func TestRecordJSONFlattensData(t *testing.T) {
	rec := model.NewRecord(model.CategoryStrength, map[string]any{"exercise": "bench", "weight": float64(80)})
	rec.CreatedAt = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	raw, err := json.Marshal(rec)
	gt.NoError(t, err)

	var flat map[string]any
	gt.NoError(t, json.Unmarshal(raw, &flat))
	gt.Equal(t, flat["exercise"], any("bench"))
	gt.Equal(t, flat["category"], any("strength"))
	gt.Equal(t, flat["date"], any("2026-10-19T08:00:00Z"))
	gt.Equal(t, flat["id"], any(string(rec.ID)))

	var back model.Record
	gt.NoError(t, json.Unmarshal(raw, &back))
	gt.Equal(t, back.ID, rec.ID)
	gt.True(t, back.CreatedAt.Equal(rec.CreatedAt))
	gt.Equal(t, back.Data, map[string]any{"exercise": "bench", "weight": float64(80)})
}

func TestRecordUnmarshalInvalidDate(t *testing.T) {
	var rec model.Record
	gt.Error(t, json.Unmarshal([]byte(`{"category":"cardio","date":"yesterday"}`), &rec))
}
