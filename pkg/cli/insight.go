package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/urfave/cli/v3"
)

func insightCommand() *cli.Command {
	var (
		cfg         config
		category    string
		fromArchive string
	)

	catFlag := categoryFlag(&category)
	// not needed when reading an archived report
	catFlag.Required = false

	flags := []cli.Flag{
		catFlag,
		&cli.StringFlag{
			Name:        "from-archive",
			Usage:       "Print the archived report stored under this object key instead of generating one",
			Destination: &fromArchive,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, archiveFlags(&cfg)...)

	return &cli.Command{
		Name:  "insight",
		Usage: "Generate a structured analysis of the latest records of a category",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.newLogger(ctx, c.Root().ErrWriter)

			if fromArchive != "" {
				return printArchivedInsight(ctx, c, &cfg, fromArchive)
			}

			cat := model.Category(category)
			if err := cat.Validate(); err != nil {
				return err
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

			archive, err := cfg.newArchive(ctx)
			if err != nil {
				return err
			}

			opts := []tracking.Option{}
			if archive != nil {
				opts = append(opts, tracking.WithArchive(archive))
			}
			uc := tracking.New(repo, queue, opts...)

			s := startSpinner(c.Root().ErrWriter, "generating analysis...")
			result, err := uc.Analysis(ctx, cat)
			s.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to analyze")
			}

			printInsight(c, result)
			return nil
		},
	}
}

func printArchivedInsight(ctx context.Context, c *cli.Command, cfg *config, key string) error {
	archive, err := cfg.newArchive(ctx)
	if err != nil {
		return err
	}
	if archive == nil {
		return goerr.Wrap(tracking.ErrArchiveDisabled, "bucket is required to read archived reports")
	}

	// the archive holds everything needed, so no store or provider is opened
	result, err := tracking.New(nil, nil, tracking.WithArchive(archive)).ArchivedAnalysis(ctx, key)
	if err != nil {
		return goerr.Wrap(err, "failed to read archived analysis")
	}

	printInsight(c, result)
	return nil
}

func printInsight(c *cli.Command, result *tracking.AnalysisResult) {
	w := c.Root().Writer

	fmt.Fprintf(w, "Analysis of %d %s records\n", len(result.Records), result.Insight.Category)
	for i, sec := range result.Insight.Sections {
		fmt.Fprintf(w, "\n%d. %s\n%s\n", i+1, sec.Title, sec.Content)
	}

	fmt.Fprintln(w, "\nAction items:")
	for _, item := range result.Insight.ActionItems {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
