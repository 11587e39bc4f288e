package jobshop_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.chromium.org/luci/common/errors"

	"jobShop/internal/jobshop"
)

// scenario - три работы из примера: суммарные длительности 5, 4 и 6.
func scenario() jobshop.Solution {
	return jobshop.Solution{
		{{Machine: 1, Duration: 3}, {Machine: 2, Duration: 2}},
		{{Machine: 1, Duration: 4}},
		{{Machine: 2, Duration: 1}, {Machine: 1, Duration: 5}},
	}
}

func TestEvaluate(t *testing.T) {
	require.Equal(t, 6, jobshop.Evaluate(scenario()))
	require.Equal(t, 0, jobshop.Evaluate(nil))
	require.Equal(t, 0, jobshop.Evaluate(jobshop.Solution{{}, {}}))
	require.Equal(t, 2, jobshop.Evaluate(jobshop.Solution{{{Machine: 1, Duration: 2}}}))
}

func TestJob_TotalAndUses(t *testing.T) {
	j := scenario()[2]
	require.Equal(t, 6, j.Total())
	require.True(t, j.Uses(1))
	require.True(t, j.Uses(2))
	require.False(t, j.Uses(3))
}

func TestSolution_CloneIsDeep(t *testing.T) {
	s := scenario()
	c := s.Clone()
	c[0][0].Duration = 100
	c[1], c[2] = c[2], c[1]

	require.Equal(t, 3, s[0][0].Duration)
	require.Empty(t, cmp.Diff(scenario(), s))
}

func TestNewInstance(t *testing.T) {
	inst, err := jobshop.NewInstance("p1", scenario())
	require.NoError(t, err)
	require.Equal(t, 3, inst.NumJobs())
	require.Equal(t, 5, inst.NumTasks())
	require.Equal(t, []int{1, 2}, inst.MachineIDs())

	// Solution отдаёт копию: изменения не затрагивают модель.
	s := inst.Solution()
	s[0][0] = jobshop.Task{Machine: 9, Duration: 9}
	require.Empty(t, cmp.Diff(scenario(), inst.Solution()))
}

func TestNewInstance_Errors(t *testing.T) {
	_, err := jobshop.NewInstance("empty", nil)
	require.True(t, errors.Is(err, jobshop.ErrEmptyProblem), "got %v", err)

	_, err = jobshop.NewInstance("neg", jobshop.Solution{{{Machine: 1, Duration: -1}}})
	require.Error(t, err)

	_, err = jobshop.NewInstance("negm", jobshop.Solution{{{Machine: -1, Duration: 1}}})
	require.Error(t, err)

	var nilInst *jobshop.Instance
	require.Error(t, nilInst.Validate())
	require.True(t, errors.Is((&jobshop.Instance{}).Validate(), jobshop.ErrEmptyProblem))
}

func TestMachineIDs_NoTasks(t *testing.T) {
	inst, err := jobshop.NewInstance("blank", jobshop.Solution{{}})
	require.NoError(t, err)
	require.Empty(t, inst.MachineIDs())
}

func TestValidateWork(t *testing.T) {
	a := jobshop.Task{Machine: 1, Duration: 3}
	b := jobshop.Task{Machine: 2, Duration: 2}
	c := jobshop.Task{Machine: 1, Duration: 4}
	want := jobshop.Solution{{a, b}, {c}}

	tests := []struct {
		name string
		got  jobshop.Solution
		ok   bool
	}{
		{"identity", jobshop.Solution{{a, b}, {c}}, true},
		{"jobs swapped", jobshop.Solution{{c}, {a, b}}, true},
		{"tasks swapped", jobshop.Solution{{b, a}, {c}}, true},
		{"task moved across jobs", jobshop.Solution{{a}, {b, c}}, false},
		{"duration changed", jobshop.Solution{{a, b}, {{Machine: 1, Duration: 5}}}, false},
		{"task lost", jobshop.Solution{{a}, {c}}, false},
		{"task duplicated", jobshop.Solution{{a, b, b}, {c}}, false},
		{"job lost", jobshop.Solution{{a, b}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := jobshop.ValidateWork(want, tc.got)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			require.Equal(t, tc.ok, jobshop.SameWork(want, tc.got))
		})
	}
}

func TestRandomInstance(t *testing.T) {
	inst := jobshop.RandomInstance(6, 4, 2, 9, rand.New(rand.NewSource(7)))
	require.Equal(t, 6, inst.NumJobs())
	require.Equal(t, 24, inst.NumTasks())
	require.Equal(t, []int{1, 2, 3, 4}, inst.MachineIDs())

	for _, job := range inst.Solution() {
		seen := make(map[int]bool)
		for _, task := range job {
			require.False(t, seen[task.Machine], "machine %d visited twice", task.Machine)
			seen[task.Machine] = true
			require.GreaterOrEqual(t, task.Duration, 2)
			require.LessOrEqual(t, task.Duration, 9)
		}
		require.Len(t, seen, 4)
	}

	again := jobshop.RandomInstance(6, 4, 2, 9, rand.New(rand.NewSource(7)))
	require.Empty(t, cmp.Diff(inst.Solution(), again.Solution()))
}

func TestRandomInstance_NilRNGPanics(t *testing.T) {
	require.Panics(t, func() { jobshop.RandomInstance(2, 2, 1, 5, nil) })
	require.Panics(t, func() { jobshop.RandomInstance(2, 2, 5, 1, rand.New(rand.NewSource(1))) })
}
