package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// importFile is the layout of a bulk import file, YAML or JSON:
//
//	records:
//	  - category: strength
//	    date: 2026-10-01T07:30:00Z
//	    data: {exercise: squat, weight: 100, reps: 5, sets: 5}
type importFile struct {
	Records []importEntry `yaml:"records"`
}

type importEntry struct {
	Category string         `yaml:"category"`
	Date     time.Time      `yaml:"date"`
	Data     map[string]any `yaml:"data"`
}

func parseImportFile(raw []byte) ([]*model.Record, error) {
	var file importFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse import file")
	}

	records := make([]*model.Record, 0, len(file.Records))
	for i, e := range file.Records {
		category := model.Category(e.Category)
		if err := category.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid entry in import file", goerr.V("index", i))
		}

		records = append(records, &model.Record{
			Category:  category,
			Data:      e.Data,
			CreatedAt: e.Date,
		})
	}

	return records, nil
}

func importCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to YAML or JSON import file, - for stdin",
			Sources:     cli.EnvVars("MATSIDE_INPUT"),
			Destination: &inputPath,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Bulk import records without generating insights",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.newLogger(ctx, c.Root().ErrWriter)

			raw, err := readInput(inputPath)
			if err != nil {
				return err
			}

			records, err := parseImportFile(raw)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			n, err := tracking.New(repo, nil).Import(ctx, records)
			if err != nil {
				return goerr.Wrap(err, "failed to import", goerr.V("imported", n))
			}

			fmt.Fprintf(c.Root().Writer, "Imported %d records\n", n)
			return nil
		},
	}
}
