package commands

import (
	"context"
	"math/rand"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"jobShop/internal/jobshop"
)

// CmdGen генерирует случайную задачу и записывает её в файл.
var CmdGen = &subcommands.Command{
	UsageLine: "gen [options...] -out FILE",
	ShortDesc: "generate a random job-shop problem file",
	LongDesc:  "Generate a random job-shop problem: every job visits machines 1..M once in random order.",
	CommandRun: func() subcommands.CommandRun {
		c := &genRun{}
		c.addSharedFlags()
		c.Flags.StringVar(&c.out, "out", "", "путь к выходному файлу задачи")
		c.Flags.IntVar(&c.jobs, "jobs", 10, "количество работ")
		c.Flags.IntVar(&c.machines, "machines", 5, "количество станков")
		c.Flags.IntVar(&c.minTime, "min", 1, "минимальная длительность операции")
		c.Flags.IntVar(&c.maxTime, "max", 99, "максимальная длительность операции")
		c.Flags.Int64Var(&c.seed, "seed", 777, "сид генератора")
		return c
	},
}

type genRun struct {
	baseRun

	out      string
	jobs     int
	machines int
	minTime  int
	maxTime  int
	seed     int64
}

func (c *genRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if err := c.innerRun(ctx); err != nil {
		printError(a, err)
		return 1
	}
	return 0
}

func (c *genRun) innerRun(ctx context.Context) error {
	if c.out == "" {
		return errors.Reason("gen: требуется флаг -out").Err()
	}
	if c.jobs <= 0 || c.machines <= 0 {
		return errors.Reason("gen: количество работ и станков должно быть > 0 (получено %d, %d)", c.jobs, c.machines).Err()
	}
	if c.minTime < 0 || c.maxTime < c.minTime {
		return errors.Reason("gen: некорректные границы длительности [%d, %d]", c.minTime, c.maxTime).Err()
	}

	inst := jobshop.RandomInstance(c.jobs, c.machines, c.minTime, c.maxTime, rand.New(rand.NewSource(c.seed)))
	if err := jobshop.WriteFile(c.out, inst.Solution()); err != nil {
		return err
	}
	logging.Infof(ctx, "wrote %d jobs x %d machines to %s", c.jobs, c.machines, c.out)
	return nil
}
