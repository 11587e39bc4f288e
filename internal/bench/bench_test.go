package bench_test

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.chromium.org/luci/common/errors"

	"jobShop/internal/bench"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
)

func saAlgorithm() bench.Algorithm {
	cfg := sa.DefaultConfig()
	cfg.CoolingRate = 0.05
	return bench.Algorithm{
		Name: "SA",
		Factory: func(seed int64) (opt.Optimizer, error) {
			return sa.New(cfg, rand.New(rand.NewSource(seed)))
		},
	}
}

func TestCalcIntStats(t *testing.T) {
	s := bench.CalcIntStats([]int{7, 3, 5})
	require.Equal(t, 3, s.N)
	require.Equal(t, 3, s.Best)
	require.InDelta(t, 5.0, s.Mean, 1e-9)
	require.InDelta(t, 2.0, s.Std, 1e-9)

	one := bench.CalcIntStats([]int{4})
	require.Equal(t, 4, one.Best)
	require.InDelta(t, 4.0, one.Mean, 1e-9)
	require.Zero(t, one.Std)

	require.Equal(t, bench.IntStats{}, bench.CalcIntStats(nil))
}

func TestCalcFloatStats(t *testing.T) {
	s := bench.CalcFloatStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.InDelta(t, 2.0, s.Best, 1e-9)
	require.InDelta(t, 5.0, s.Mean, 1e-9)
	require.InDelta(t, 2.13809, s.Std, 1e-5)
}

func TestParseSources(t *testing.T) {
	got, err := bench.ParseSources([]string{"random:20x5", " problems/p1.csv ", "", "random:3x2"}, 777)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, bench.Source{Jobs: 20, Machines: 5, InstanceSeed: 777 + 2000 + 5}, got[0])
	require.Equal(t, "random:20x5", got[0].String())
	require.Equal(t, bench.Source{Path: "problems/p1.csv"}, got[1])
	require.Equal(t, int64(777+3*10_000+300+2), got[2].InstanceSeed)

	for _, bad := range []string{"random:20", "random:ax5", "random:0x5", "random:5x-1"} {
		_, err := bench.ParseSources([]string{bad}, 1)
		require.Error(t, err, bad)
	}
}

func TestSource_LoadRandomIsStable(t *testing.T) {
	src := bench.Source{Jobs: 4, Machines: 3, InstanceSeed: 99}
	a, err := src.Load()
	require.NoError(t, err)
	b, err := src.Load()
	require.NoError(t, err)
	require.Equal(t, a.Solution(), b.Solution())
	require.Equal(t, 4, a.NumJobs())
}

func TestRunCase(t *testing.T) {
	inst := jobshop.RandomInstance(6, 3, 1, 20, rand.New(rand.NewSource(1)))
	r := bench.Runner{Runs: 3, BaseSeed: 10, BatchID: "b1"}

	rec, err := r.RunCase(context.Background(), inst, saAlgorithm())
	require.NoError(t, err)
	require.Equal(t, "b1", rec.BatchID)
	require.Equal(t, "SA", rec.Algo)
	require.Equal(t, 6, rec.Jobs)
	require.Equal(t, 18, rec.Tasks)
	require.Equal(t, 3, rec.Machines)
	require.Equal(t, 3, rec.Runs)
	require.Equal(t, jobshop.Evaluate(inst.Solution()), rec.MakespanBest)
	require.Positive(t, rec.AllocMakespanBest)
}

func TestRunCase_FactoryError(t *testing.T) {
	inst := jobshop.RandomInstance(3, 2, 1, 9, rand.New(rand.NewSource(1)))
	algo := bench.Algorithm{
		Name: "SA",
		Factory: func(seed int64) (opt.Optimizer, error) {
			return sa.New(sa.Config{InitialTemp: 1, FinalTemp: 5, CoolingRate: 0.1}, rand.New(rand.NewSource(seed)))
		},
	}

	_, err := bench.Runner{Runs: 1}.RunCase(context.Background(), inst, algo)
	require.Error(t, err)
	require.ErrorContains(t, err, "FinalTemp")
}

// TestRunBatch_SkipsBrokenInstances: ошибка одного экземпляра не прерывает
// пакет и возвращается в errors.MultiError.
func TestRunBatch_SkipsBrokenInstances(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte("\"1,3\",\"2,2\"\n\"1,4\"\n\"2,1\",\"1,5\"\n"), 0o644))
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("\"1,x\"\n"), 0o644))
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	sources, err := bench.ParseSources([]string{good, bad, "random:5x3", empty}, 1)
	require.NoError(t, err)

	r := bench.Runner{Runs: 2, BaseSeed: 1, Parallelism: 2}
	records, err := r.RunBatch(context.Background(), sources, saAlgorithm())
	require.Error(t, err)

	merr, ok := err.(errors.MultiError)
	require.True(t, ok, "got %T", err)
	require.Len(t, merr, 2)
	require.True(t, errors.Is(merr[0], jobshop.ErrMalformedInput), "got %v", merr[0])
	require.True(t, errors.Is(merr[1], jobshop.ErrEmptyProblem), "got %v", merr[1])

	require.Len(t, records, 2)
	require.Equal(t, "good", records[0].Instance)
	require.Equal(t, 6, records[0].MakespanBest)
	require.Equal(t, "random-5x3", records[1].Instance)
	require.NotEmpty(t, records[0].BatchID)
	require.Equal(t, records[0].BatchID, records[1].BatchID)

	out := filepath.Join(dir, "out", "results.csv")
	require.NoError(t, bench.WriteCSV(out, records))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "batch", rows[0][0])
	require.Equal(t, "good", rows[1][1])
	require.Equal(t, "6", rows[1][10])
}

func TestRunBatch_AllGood(t *testing.T) {
	sources, err := bench.ParseSources([]string{"random:4x2", "random:3x3"}, 5)
	require.NoError(t, err)

	records, err := bench.Runner{Runs: 1, BaseSeed: 3}.RunBatch(context.Background(), sources, saAlgorithm())
	require.NoError(t, err)
	require.Len(t, records, 2)
}
