package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/metrics"
	"github.com/m-mizutani/matside/pkg/scheduler"
	"github.com/m-mizutani/matside/pkg/server"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg            config
		addr           string
		requestTimeout time.Duration
		alertSchedule  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Aliases:     []string{"a"},
			Usage:       "Listen address",
			Value:       ":5000",
			Sources:     cli.EnvVars("MATSIDE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Maximum wait of an API request for its queued generation call",
			Value:       server.DefaultRequestTimeout,
			Sources:     cli.EnvVars("MATSIDE_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
		&cli.StringFlag{
			Name:        "alert-schedule",
			Usage:       "Cron spec of the periodic alert evaluation (disabled when empty)",
			Value:       "@every 15m",
			Sources:     cli.EnvVars("MATSIDE_ALERT_SCHEDULE"),
			Destination: &alertSchedule,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, archiveFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.newLogger(ctx, c.Root().ErrWriter)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Initialize dependencies
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			m := metrics.New()
			queue, err := cfg.newQueue(ctx, m)
			if err != nil {
				return err
			}

			archive, err := cfg.newArchive(ctx)
			if err != nil {
				return err
			}

			opts := []tracking.Option{}
			if archive != nil {
				opts = append(opts, tracking.WithArchive(archive))
			}
			uc := tracking.New(repo, queue, opts...)

			if alertSchedule != "" {
				sched := scheduler.New(ctx)
				if err := sched.AddJob(alertSchedule, scheduler.NewAlertJob(uc, m)); err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
			}

			srv := server.New(server.Config{
				Addr:           addr,
				UseCase:        uc,
				Metrics:        m,
				QueueStats:     queue.Stats,
				RequestTimeout: requestTimeout,
				Logger:         logger,
			})

			logger.Info("matside configured",
				"store", cfg.store,
				"requests_per_minute", cfg.requestsPerMinute,
				"min_interval", queue.MinInterval(),
				"archive", cfg.bucket,
			)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to stop server")
			}
			return nil
		},
	}
}
