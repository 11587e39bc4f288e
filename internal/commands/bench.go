package commands

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/data/text"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"jobShop/internal/bench"
	"jobShop/internal/config"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
)

// CmdBench запускает пакетный прогон по списку источников.
var CmdBench = &subcommands.Command{
	UsageLine: "bench [options...] SOURCE...",
	ShortDesc: "run simulated annealing over a batch of problems",
	LongDesc: text.Doc(`
		Run simulated annealing several times over each source and write
		statistics to a CSV file.

		A source is a problem file path or "random:JxM" for a generated
		instance with J jobs and M machines.
	`),
	CommandRun: func() subcommands.CommandRun {
		c := &benchRun{}
		c.addSharedFlags()
		c.addAnnealingFlags()
		def := config.Default().Runner
		c.Flags.StringVar(&c.out, "out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		c.Flags.IntVar(&c.runs, "runs", def.Runs, "количество запусков на экземпляр (с разными сидами)")
		c.Flags.IntVar(&c.parallel, "parallel", def.Parallelism, "количество экземпляров, решаемых одновременно")
		c.Flags.Int64Var(&c.instanceSeed, "instance_seed", 777, "базовый сид для генерации экземпляров random:JxM")
		c.Flags.DurationVar(&c.perRunTO, "per_run_timeout", 0, "таймаут одного запуска; 0 - без ограничения")
		return c
	},
}

type benchRun struct {
	baseRun

	out          string
	runs         int
	parallel     int
	instanceSeed int64
	perRunTO     time.Duration
}

func (c *benchRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if err := c.innerRun(ctx, a, args); err != nil {
		printError(a, err)
		return 1
	}
	return 0
}

func (c *benchRun) innerRun(ctx context.Context, a subcommands.Application, args []string) error {
	if len(args) == 0 {
		return errors.Reason("bench: нужен хотя бы один источник").Err()
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner := cfg.Runner
	c.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "runs":
			runner.Runs = c.runs
		case "parallel":
			runner.Parallelism = c.parallel
		case "per_run_timeout":
			runner.PerRunTimeout = c.perRunTO
		}
	})

	sources, err := bench.ParseSources(args, c.instanceSeed)
	if err != nil {
		return err
	}

	algo := bench.Algorithm{Name: "SA", Factory: newSAFactory(cfg.Annealing)}
	records, batchErr := runner.RunBatch(ctx, sources, algo)
	for _, rec := range records {
		fmt.Fprintf(a.GetOut(), "%s: значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms\n",
			rec.Instance, rec.MakespanBest, rec.MakespanMean, rec.MakespanStd, rec.TimeMeanMs)
	}

	if err := bench.WriteCSV(c.out, records); err != nil {
		return errors.Annotate(err, "запись %s", c.out).Err()
	}
	logging.Infof(ctx, "saved %d records to %s", len(records), c.out)
	return batchErr
}

func newSAFactory(cfg sa.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := sa.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}
