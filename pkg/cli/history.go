package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg      config
		category string
	)

	flags := []cli.Flag{
		categoryFlag(&category),
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "Print stored records of a category as JSON lines, latest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.newLogger(ctx, c.Root().ErrWriter)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			records, err := tracking.New(repo, nil).History(ctx, model.Category(category))
			if err != nil {
				return goerr.Wrap(err, "failed to list records")
			}

			if len(records) == 0 {
				fmt.Fprintf(c.Root().Writer, "No %s records found\n", category)
				return nil
			}

			enc := json.NewEncoder(c.Root().Writer)
			for _, r := range records {
				if err := enc.Encode(r); err != nil {
					return goerr.Wrap(err, "failed to encode record", goerr.V("id", r.ID))
				}
			}

			return nil
		},
	}
}
