package bench

import (
	"context"
	"encoding/csv"
	"os"
	"time"

	"github.com/google/uuid"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"golang.org/x/sync/errgroup"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

type Algorithm struct {
	Name string
	// Factory создаёт оптимизатор для одного запуска с заданным сидом.
	Factory func(seed int64) (opt.Optimizer, error)
}

type Record struct {
	BatchID  string
	Instance string
	Algo     string
	Jobs     int
	Tasks    int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	// AllocMakespanBest - лучшее время завершения станков по ECT-распределению
	// (отчётная величина).
	AllocMakespanBest int
}

type Runner struct {
	Runs          int           `yaml:"runs"`
	BaseSeed      int64         `yaml:"seed"`
	PerRunTimeout time.Duration `yaml:"per_run_timeout"` // 0 = no timeout
	// Parallelism - число экземпляров, решаемых одновременно; <= 1 - по очереди.
	Parallelism int `yaml:"parallelism"`

	BatchID string `yaml:"-"`
}

// DefaultRunner возвращает параметры прогона по умолчанию.
func DefaultRunner() Runner {
	return Runner{
		Runs:        30,
		BaseSeed:    1000,
		Parallelism: 1,
	}
}

// RunBatch решает каждый источник Runs раз. Ошибка одного экземпляра не
// прерывает пакет: она записывается в журнал и возвращается в составе
// errors.MultiError вместе с записями успешных экземпляров.
func (r Runner) RunBatch(ctx context.Context, sources []Source, algo Algorithm) ([]Record, error) {
	if r.BatchID == "" {
		r.BatchID = uuid.NewString()
	}
	logging.Infof(ctx, "bench: batch %s: %d instances, algorithm %s", r.BatchID, len(sources), algo.Name)

	records := make([]Record, len(sources))
	failures := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(max(1, r.Parallelism))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			inst, err := src.Load()
			if err != nil {
				logging.Errorf(ctx, "bench: skipping %s: %s", src, err)
				failures[i] = errors.Annotate(err, "экземпляр %s", src).Err()
				return nil
			}
			rec, err := r.RunCase(ctx, inst, algo)
			if err != nil {
				logging.Errorf(ctx, "bench: %s failed: %s", src, err)
				failures[i] = errors.Annotate(err, "экземпляр %s", src).Err()
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	var out []Record
	var merr errors.MultiError
	for i := range sources {
		if failures[i] != nil {
			merr = append(merr, failures[i])
			continue
		}
		out = append(out, records[i])
	}
	if len(merr) > 0 {
		return out, merr
	}
	return out, nil
}

func (r Runner) RunCase(ctx context.Context, inst *jobshop.Instance, algo Algorithm) (Record, error) {
	if err := inst.Validate(); err != nil {
		return Record{}, err
	}
	runs := max(1, r.Runs)
	logging.Infof(ctx, "bench: %s on %q: %d jobs, %d tasks, %d runs",
		algo.Name, inst.Name, inst.NumJobs(), inst.NumTasks(), runs)

	makespans := make([]int, 0, runs)
	allocMakespans := make([]int, 0, runs)
	timesMs := make([]float64, 0, runs)

	for i := 0; i < runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, errors.Annotate(err, "запуск %d: не удалось создать %s", i, algo.Name).Err()
		}
		if op == nil {
			return Record{}, errors.Reason("запуск %d: алгоритм %s не вернул оптимизатор", i, algo.Name).Err()
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, errors.Annotate(err, "запуск %d: отменён или превышен таймаут", i).Err()
		}
		if err != nil {
			return Record{}, errors.Annotate(err, "запуск %d: ошибка решения", i).Err()
		}
		if err := jobshop.ValidateWork(inst.Solution(), res.Solution); err != nil {
			return Record{}, errors.Annotate(err, "запуск %d: некорректное решение", i).Err()
		}

		makespans = append(makespans, res.Makespan)
		allocMakespans = append(allocMakespans, res.Allocation.Makespan())
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcIntStats(makespans)
	allocStats := CalcIntStats(allocMakespans)
	tStats := CalcFloatStats(timesMs)

	logging.Infof(ctx, "bench: %q best=%d mean=%.2f std=%.2f", inst.Name, msStats.Best, msStats.Mean, msStats.Std)

	return Record{
		BatchID:  r.BatchID,
		Instance: inst.Name,
		Algo:     algo.Name,
		Jobs:     inst.NumJobs(),
		Tasks:    inst.NumTasks(),
		Machines: len(inst.MachineIDs()),
		Runs:     runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		AllocMakespanBest: allocStats.Best,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"batch", "instance", "algo", "jobs", "tasks", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
		"alloc_makespan_best",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.BatchID,
			r.Instance,
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Tasks),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			itoa(r.AllocMakespanBest),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
