package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type RecordID string

// NewRecordID generates a new unique RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// Record is one stored time-series entry of a category. Data holds the
// category specific fields exactly as submitted; records are never updated.
type Record struct {
	ID        RecordID
	Category  Category
	Data      map[string]any
	CreatedAt time.Time
}

// NewRecord creates a record stamped with the current time
func NewRecord(category Category, data map[string]any) *Record {
	if data == nil {
		data = map[string]any{}
	}
	return &Record{
		ID:        NewRecordID(),
		Category:  category,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// MarshalJSON flattens Data next to the id, category and date keys.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Data)+3)
	for k, v := range r.Data {
		out[k] = v
	}
	out["id"] = r.ID
	out["category"] = r.Category
	out["date"] = r.CreatedAt
	return json.Marshal(out)
}

// UnmarshalJSON is the reverse of MarshalJSON. A missing date leaves
// CreatedAt zero.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "failed to unmarshal record")
	}

	if v, ok := raw["id"].(string); ok {
		r.ID = RecordID(v)
	}
	if v, ok := raw["category"].(string); ok {
		r.Category = Category(v)
	}
	if v, ok := raw["date"].(string); ok {
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return goerr.Wrap(err, "invalid record date", goerr.V("date", v))
		}
		r.CreatedAt = ts
	}

	delete(raw, "id")
	delete(raw, "category")
	delete(raw, "date")
	r.Data = raw
	return nil
}
