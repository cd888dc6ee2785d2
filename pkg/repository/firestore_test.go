package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.NewFirestore(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestFirestorePutAndList(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	// collections are shared between runs; stamp in the future so these sort first
	future := time.Now().Add(24 * time.Hour).Truncate(time.Millisecond)
	older := model.NewRecord(model.CategoryWrestling, map[string]any{"takedownPercentage": int64(55)})
	older.CreatedAt = future
	newer := model.NewRecord(model.CategoryWrestling, map[string]any{"takedownPercentage": int64(60), "technique": "single leg"})
	newer.CreatedAt = future.Add(time.Second)

	gt.NoError(t, repo.PutRecord(ctx, older))
	gt.NoError(t, repo.PutRecord(ctx, newer))

	records, err := repo.ListRecords(ctx, model.CategoryWrestling, 2)
	gt.NoError(t, err)
	gt.A(t, records).Length(2)
	gt.Equal(t, records[0].ID, newer.ID)
	gt.Equal(t, records[1].ID, older.ID)
	gt.Equal(t, records[0].Data["technique"], any("single leg"))
}
