package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
)

func alertsCommand() *cli.Command {
	var cfg config

	flags := []cli.Flag{}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)

	return &cli.Command{
		Name:  "alerts",
		Usage: "Evaluate alert rules over the stored history",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.newLogger(ctx, c.Root().ErrWriter)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			alerts, err := tracking.New(repo, nil).Alerts(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to evaluate alerts")
			}

			if len(alerts) == 0 {
				fmt.Fprintln(c.Root().Writer, "No alerts")
				return nil
			}

			for _, a := range alerts {
				fmt.Fprintf(c.Root().Writer, "[%s] P%d %s: %s\n", a.Severity, a.Priority, a.Category, a.Message)
			}

			return nil
		},
	}
}
