package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
)

const importYAML = `
records:
  - category: recovery
    date: 2026-10-01T07:00:00Z
    data: {hrv: 45, sleepHours: 6, soreness: 3}
  - category: recovery
    date: 2026-10-02T07:00:00Z
    data: {hrv: 42, sleepHours: 6.5, soreness: 4}
  - category: recovery
    date: 2026-10-03T07:00:00Z
    data: {hrv: 40, sleepHours: 5, soreness: 8}
  - category: strength
    data:
      exercise: deadlift
      weight: 120
      reps: 5
      sets: 3
`

func TestParseImportFile(t *testing.T) {
	records, err := parseImportFile([]byte(importYAML))
	gt.NoError(t, err)
	gt.A(t, records).Length(4)
	gt.Equal(t, records[0].Category, model.CategoryRecovery)
	gt.True(t, records[0].CreatedAt.Equal(time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)))
	gt.Equal(t, records[3].Data["exercise"], any("deadlift"))
	gt.True(t, records[3].CreatedAt.IsZero())
}

func TestParseImportFileJSON(t *testing.T) {
	records, err := parseImportFile([]byte(`{"records":[{"category":"cardio","data":{"duration":30}}]}`))
	gt.NoError(t, err)
	gt.A(t, records).Length(1)
	gt.Equal(t, records[0].Category, model.CategoryCardio)
}

func TestParseImportFileInvalidCategory(t *testing.T) {
	_, err := parseImportFile([]byte("records:\n  - category: golf\n"))
	gt.True(t, errors.Is(err, model.ErrInvalidCategory))
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(context.Background(), append([]string{"matside"}, args...))
	return out.String(), err
}

func TestImportHistoryAndAlerts(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "matside.db")
	input := filepath.Join(dir, "import.yaml")
	gt.NoError(t, os.WriteFile(input, []byte(importYAML), 0600))

	out, err := runApp(t, "import", "--input", input, "--store", "sqlite", "--sqlite-path", dbPath)
	gt.NoError(t, err)
	gt.S(t, out).Contains("Imported 4 records")

	out, err = runApp(t, "history", "--category", "recovery", "--store", "sqlite", "--sqlite-path", dbPath)
	gt.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	gt.A(t, lines).Length(3)
	gt.S(t, lines[0]).Contains(`"hrv":40`)

	out, err = runApp(t, "alerts", "--store", "sqlite", "--sqlite-path", dbPath)
	gt.NoError(t, err)
	gt.S(t, out).Contains("[error] P1 recovery: Consistently low HRV")
	gt.S(t, out).Contains("High soreness level detected")

	out, err = runApp(t, "history", "--category", "injury", "--store", "sqlite", "--sqlite-path", dbPath)
	gt.NoError(t, err)
	gt.S(t, out).Contains("No injury records found")
}

func TestRecordRequiresProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_PROJECT_ID", "")

	input := filepath.Join(t.TempDir(), "record.json")
	gt.NoError(t, os.WriteFile(input, []byte(`{"duration":30}`), 0600))

	_, err := runApp(t, "record", "--category", "cardio", "--input", input, "--store", "memory")
	gt.Error(t, err)
}

func TestUnknownStore(t *testing.T) {
	_, err := runApp(t, "alerts", "--store", "mongodb")
	gt.Error(t, err)
}

func TestInsightFromArchiveRequiresBucket(t *testing.T) {
	t.Setenv("MATSIDE_ARCHIVE_BUCKET", "")

	_, err := runApp(t, "insight", "--from-archive", "analysis/cardio/20261019T093000.000Z.json", "--store", "memory")
	gt.True(t, errors.Is(err, tracking.ErrArchiveDisabled))
}

func TestInsightRequiresCategoryWithoutArchive(t *testing.T) {
	_, err := runApp(t, "insight", "--store", "memory")
	gt.True(t, errors.Is(err, model.ErrInvalidCategory))
}
