package main

import (
	"context"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/logging/gologger"

	"jobShop/internal/commands"
)

// getApplication возвращает приложение командной строки jobshop.
func getApplication() *cli.Application {
	return &cli.Application{
		Name:  "jobshop",
		Title: "job-shop scheduling with simulated annealing",
		Context: func(ctx context.Context) context.Context {
			return gologger.StdConfig.Use(ctx)
		},
		Commands: []*subcommands.Command{
			commands.CmdSolve,
			commands.CmdBench,
			commands.CmdGen,

			subcommands.CmdHelp,
		},
	}
}

func main() {
	os.Exit(subcommands.Run(getApplication(), nil))
}
