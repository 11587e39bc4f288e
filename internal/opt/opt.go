package opt

import (
	"context"
	"time"

	"jobShop/internal/alloc"
	"jobShop/internal/jobshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *jobshop.Instance) (Result, error)
}

type Result struct {
	Solution jobshop.Solution
	Makespan int
	// Allocation - распределение лучшего решения по станкам (только отчёт).
	Allocation  alloc.Allocation
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
