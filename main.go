package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/matside/pkg/cli"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Message)
		os.Exit(err.Code)
	}
}
