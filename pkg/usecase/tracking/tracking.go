package tracking

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/adapter"
	"github.com/m-mizutani/matside/pkg/repository"
)

var (
	// ErrPersistence marks failures of the record store
	ErrPersistence = goerr.New("persistence failure")
	// ErrArchiveDisabled is returned when reading reports without an archive
	ErrArchiveDisabled = goerr.New("archive is not configured")
)

// Generator submits a prompt and waits for the generated text. *dispatch.Queue
// implements it.
type Generator interface {
	Submit(ctx context.Context, prompt string) (string, error)
}

// UseCase provides athlete tracking operations
type UseCase struct {
	repo      repository.Repository
	generator Generator
	archive   adapter.Archive
	now       func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithArchive stores every generated analysis report in archive
func WithArchive(archive adapter.Archive) Option {
	return func(uc *UseCase) {
		uc.archive = archive
	}
}

// WithNow replaces the clock used for record timestamps
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new tracking UseCase instance
func New(
	repo repository.Repository,
	generator Generator,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:      repo,
		generator: generator,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
