package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	data TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_category_created ON records(category, created_at);
`

// SQLite keeps all records in one table
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and creates when missing) the database at path. Use
// ":memory:" for a throwaway database.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite", goerr.V("path", path))
	}

	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to migrate sqlite schema", goerr.V("path", path))
	}

	return &SQLite{db: db}, nil
}

func (r *SQLite) PutRecord(ctx context.Context, record *model.Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	data, err := json.Marshal(record.Data)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal record data", goerr.V("id", record.ID))
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO records (id, category, data, created_at) VALUES (?, ?, ?, ?)`,
		string(record.ID), string(record.Category), string(data), record.CreatedAt.UnixNano())
	if err != nil {
		return goerr.Wrap(err, "failed to insert record", goerr.V("id", record.ID), goerr.V("category", record.Category))
	}

	return nil
}

func (r *SQLite) ListRecords(ctx context.Context, category model.Category, limit int) ([]*model.Record, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT id, category, data, created_at FROM records WHERE category = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{string(category)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query records", goerr.V("category", category))
	}
	defer rows.Close()

	records := []*model.Record{}
	for rows.Next() {
		var (
			id, cat, raw string
			createdAt    int64
		)
		if err := rows.Scan(&id, &cat, &raw, &createdAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan record", goerr.V("category", category))
		}

		data := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record data", goerr.V("id", id))
		}

		records = append(records, &model.Record{
			ID:        model.RecordID(id),
			Category:  model.Category(cat),
			Data:      data,
			CreatedAt: time.Unix(0, createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read records", goerr.V("category", category))
	}

	return records, nil
}

func (r *SQLite) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite")
	}
	return nil
}
