package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/adapter"
	"github.com/m-mizutani/matside/pkg/dispatch"
	"github.com/m-mizutani/matside/pkg/repository"
	"github.com/m-mizutani/matside/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

const (
	storeFirestore = "firestore"
	storeSQLite    = "sqlite"
	storeMemory    = "memory"
)

// config holds configuration values
type config struct {
	// Logging
	logLevel  string
	logFormat string

	// Repository
	store       string
	project     string
	database    string
	sqlitePath  string
	credentials string

	// Adapters
	geminiAPIKey      string
	geminiProject     string
	geminiLocation    string
	geminiModel       string
	requestsPerMinute int64
	bucket            string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("MATSIDE_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       string(logging.FormatConsole),
			Sources:     cli.EnvVars("MATSIDE_LOG_FORMAT"),
			Destination: &cfg.logFormat,
		},
	}
}

// storeFlags returns flags selecting and configuring the record store
func storeFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Record store (firestore, sqlite, memory)",
			Value:       storeSQLite,
			Sources:     cli.EnvVars("MATSIDE_STORE"),
			Destination: &cfg.store,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file",
			Value:       "matside.db",
			Sources:     cli.EnvVars("MATSIDE_SQLITE_PATH"),
			Destination: &cfg.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "credentials",
			Usage:       "Google Cloud service account key file",
			Sources:     cli.EnvVars("GOOGLE_APPLICATION_CREDENTIALS"),
			Destination: &cfg.credentials,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (takes precedence over Vertex AI)",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini on Vertex AI",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Generative model name",
			Value:       "gemini-1.5-pro",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
		&cli.IntFlag{
			Name:        "requests-per-minute",
			Usage:       "Budget of generation calls per minute",
			Value:       dispatch.DefaultRequestsPerMinute,
			Sources:     cli.EnvVars("MATSIDE_REQUESTS_PER_MINUTE"),
			Destination: &cfg.requestsPerMinute,
		},
	}
}

// archiveFlags returns flags for archiving generated reports
func archiveFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket to archive analysis reports (disabled when empty)",
			Sources:     cli.EnvVars("MATSIDE_ARCHIVE_BUCKET"),
			Destination: &cfg.bucket,
		},
	}
}

// newLogger builds the logger, installs it as default and attaches it to ctx
func (cfg *config) newLogger(ctx context.Context, w io.Writer) (context.Context, *slog.Logger) {
	logger := logging.NewWithFormat(cfg.logLevel, logging.Format(cfg.logFormat), w)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), logger
}

func (cfg *config) clientOptions() []option.ClientOption {
	if cfg.credentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.credentials)}
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	switch cfg.store {
	case storeFirestore:
		if cfg.project == "" {
			return nil, goerr.New("project is required")
		}
		if cfg.database == "" {
			return nil, goerr.New("database is required")
		}
		repo, err := repository.NewFirestore(ctx, cfg.project, cfg.database, cfg.clientOptions()...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create repository")
		}
		return repo, nil

	case storeSQLite:
		if cfg.sqlitePath == "" {
			return nil, goerr.New("sqlite-path is required")
		}
		repo, err := repository.NewSQLite(ctx, cfg.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create repository")
		}
		return repo, nil

	case storeMemory:
		return repository.NewMemory(), nil

	default:
		return nil, goerr.New("unknown store", goerr.V("store", cfg.store))
	}
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	opts := []adapter.GeminiOption{}
	if cfg.geminiModel != "" {
		opts = append(opts, adapter.WithGenerativeModel(cfg.geminiModel))
	}

	switch {
	case cfg.geminiAPIKey != "":
		return adapter.NewGemini(ctx, cfg.geminiAPIKey, opts...)
	case cfg.geminiProject != "":
		if cfg.geminiLocation == "" {
			return nil, goerr.New("gemini-location is required")
		}
		return adapter.NewVertexGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
	default:
		return nil, goerr.New("gemini-api-key or gemini-project is required")
	}
}

// newQueue creates the dispatch queue in front of Gemini. observer may be nil.
func (cfg *config) newQueue(ctx context.Context, observer dispatch.Observer) (*dispatch.Queue, error) {
	gemini, err := cfg.newGemini(ctx)
	if err != nil {
		return nil, err
	}

	opts := []dispatch.Option{dispatch.WithRequestsPerMinute(int(cfg.requestsPerMinute))}
	if observer != nil {
		opts = append(opts, dispatch.WithObserver(observer))
	}

	return dispatch.New(adapter.NewTextGenerator(gemini, nil), opts...), nil
}

// newArchive creates the report archive, nil when no bucket is configured
func (cfg *config) newArchive(ctx context.Context) (adapter.Archive, error) {
	if cfg.bucket == "" {
		return nil, nil
	}

	archive, err := adapter.NewStorage(ctx, cfg.bucket, cfg.clientOptions()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return archive, nil
}
