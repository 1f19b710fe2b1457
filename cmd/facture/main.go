package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/taff-facture/internal/cli"
	"github.com/jhoicas/taff-facture/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Env:   "development",
		Level: os.Getenv("LOG_LEVEL"),
		Out:   os.Stderr,
	})

	if err := cli.NewRootCommand(log).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
