package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/data/text"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"jobShop/internal/alloc"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
)

// CmdSolve решает задачи из файлов по очереди.
var CmdSolve = &subcommands.Command{
	UsageLine: "solve [options...] FILE...",
	ShortDesc: "solve job-shop problems with simulated annealing",
	LongDesc: text.Doc(`
		Solve each problem file with simulated annealing.

		Each line of a problem file is one job; each field is a quoted
		"machine,duration" pair. Files that fail to load or solve are
		reported and skipped.
	`),
	CommandRun: func() subcommands.CommandRun {
		c := &solveRun{}
		c.addSharedFlags()
		c.addAnnealingFlags()
		return c
	},
}

type solveRun struct {
	baseRun
}

func (c *solveRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if err := c.innerRun(ctx, a, args); err != nil {
		printError(a, err)
		return 1
	}
	return 0
}

func (c *solveRun) innerRun(ctx context.Context, a subcommands.Application, args []string) error {
	if len(args) == 0 {
		return errors.Reason("solve: нужен хотя бы один файл задачи").Err()
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var merr errors.MultiError
	for i, path := range args {
		inst, err := jobshop.ReadFile(path)
		if err != nil {
			logging.Errorf(ctx, "skipping %s: %s", path, err)
			merr = append(merr, err)
			continue
		}
		solver, err := sa.New(cfg.Annealing, rand.New(rand.NewSource(cfg.Runner.BaseSeed+int64(i))))
		if err != nil {
			return err
		}
		res, err := solver.Solve(ctx, inst)
		if err != nil {
			logging.Errorf(ctx, "%s: %s", path, err)
			merr = append(merr, errors.Annotate(err, "решение %s", path).Err())
			continue
		}
		printResult(a.GetOut(), inst, res)
	}
	if len(merr) > 0 {
		return merr
	}
	return nil
}

func printResult(w io.Writer, inst *jobshop.Instance, res opt.Result) {
	fmt.Fprintf(w, "Задача %s: общее время обработки = %d (итераций %d, %.2fms)\n",
		inst.Name, res.Makespan, res.Iterations, float64(res.Duration.Microseconds())/1000.0)

	byMachine := alloc.JobsByMachine(res.Solution)
	for _, m := range sortedKeys(byMachine) {
		fmt.Fprintf(w, "  станок %d: работы %v\n", m, byMachine[m])
	}
	for _, m := range res.Allocation.Completion.IDs() {
		fmt.Fprintf(w, "  ECT станок %d: завершение %d\n", m, res.Allocation.Completion[m])
	}
}

func sortedKeys(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
