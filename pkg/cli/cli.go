package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "matside",
		Usage: "Athlete training tracker with rate limited insight generation",
		Commands: []*cli.Command{
			serveCommand(),
			recordCommand(),
			historyCommand(),
			alertsCommand(),
			insightCommand(),
			importCommand(),
		},
	}
}

func Run(ctx context.Context, argv []string) *Error {
	if err := newApp().Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
