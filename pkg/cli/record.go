package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
)

func categoryFlag(dst *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "category",
		Aliases:     []string{"c"},
		Usage:       "Record category (strength, cardio, nutrition, recovery, wrestling, injury)",
		Sources:     cli.EnvVars("MATSIDE_CATEGORY"),
		Destination: dst,
		Required:    true,
	}
}

// startSpinner shows progress on stderr while the queued call is pending
func startSpinner(w io.Writer, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return s
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.Value("path", path))
	}
	return data, nil
}

func recordCommand() *cli.Command {
	var (
		cfg       config
		category  string
		inputPath string
	)

	flags := []cli.Flag{
		categoryFlag(&category),
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to JSON file with the record fields, - for stdin",
			Value:       "-",
			Sources:     cli.EnvVars("MATSIDE_INPUT"),
			Destination: &inputPath,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "record",
		Usage: "Store a record and print the generated insight",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.newLogger(ctx, c.Root().ErrWriter)

			cat := model.Category(category)
			if err := cat.Validate(); err != nil {
				return err
			}

			raw, err := readInput(inputPath)
			if err != nil {
				return err
			}

			var data map[string]any
			if err := json.Unmarshal(raw, &data); err != nil {
				return goerr.Wrap(err, "failed to parse JSON")
			}

			// Initialize dependencies
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			queue, err := cfg.newQueue(ctx, nil)
			if err != nil {
				return err
			}

			uc := tracking.New(repo, queue)

			s := startSpinner(c.Root().ErrWriter, "generating insights...")
			result, err := uc.Record(ctx, cat, data)
			s.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to record")
			}

			fmt.Fprintf(c.Root().Writer, "Record saved: %s\n\n%s\n", result.Record.ID, result.Insight)
			return nil
		},
	}
}
