package sa

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"jobShop/internal/alloc"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// State - состояние цикла отжига.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Step описывает одну итерацию отжига и передаётся в Solver.Hook.
type Step struct {
	Iteration int
	// Temperature - температура, при которой принималось решение.
	Temperature float64
	// NextTemperature - температура после охлаждения.
	NextTemperature float64

	Candidate int
	Accepted  bool
	Current   int
	Best      int

	// Allocation - распределение кандидата по станкам (только отчёт).
	Allocation alloc.Allocation
	State      State
}

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	// Hook, если задан, вызывается после каждой итерации.
	Hook func(Step)
}

// searchState - текущее и лучшее решения поиска.
type searchState struct {
	current     jobshop.Solution
	currentCost int
	best        jobshop.Solution
	bestCost    int
	temp        float64
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve возвращает лучшее найденное значение целевой функции и решение.
// Поиск начинается с исходного порядка работ.
func Solve(ctx context.Context, jobs jobshop.Solution, cfg Config, rng *rand.Rand) (int, jobshop.Solution, error) {
	inst, err := jobshop.NewInstance("", jobs)
	if err != nil {
		return 0, nil, err
	}
	s, err := New(cfg, rng)
	if err != nil {
		return 0, nil, err
	}
	res, err := s.Solve(ctx, inst)
	if err != nil {
		return 0, nil, err
	}
	return res.Makespan, res.Solution, nil
}

// Solve запускает отжиг от исходного порядка работ задачи.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, errors.New("генератор случайных чисел не инициализирован (nil)")
	}

	allocator := alloc.NewAllocator(alloc.NewMachineTimes(s.machineIDs(inst)))

	curr := inst.Solution()
	currCost := jobshop.Evaluate(curr)
	st := searchState{
		current:     curr,
		currentCost: currCost,
		best:        curr.Clone(),
		bestCost:    currCost,
		temp:        s.Cfg.InitialTemp,
	}

	evals := 1
	iter := 0
	for s.running(st.temp) {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res, aerr := s.result(st, allocator, evals, iter, start, "context")
			if aerr != nil {
				return opt.Result{}, aerr
			}
			return res, err
		}

		cand := Perturb(st.current.Clone(), s.Rng)

		// Распределение по станкам не влияет на целевую функцию.
		allocation, err := allocator.Allocate(cand)
		if err != nil {
			return opt.Result{}, errors.Annotate(err, "итерация %d", iter).Err()
		}

		candCost := jobshop.Evaluate(cand)
		evals++

		accepted := s.accept(st.currentCost, candCost, st.temp)
		if accepted {
			st.current = cand
			st.currentCost = candCost

			// Обновление глобально лучшего решения
			if candCost < st.bestCost {
				st.bestCost = candCost
				st.best = cand.Clone()
			}
		}

		T := st.temp
		// Охлаждение температуры
		st.temp *= 1 - s.Cfg.CoolingRate
		iter++

		if s.Hook != nil {
			state := StateRunning
			if !s.running(st.temp) {
				state = StateTerminated
			}
			s.Hook(Step{
				Iteration:       iter,
				Temperature:     T,
				NextTemperature: st.temp,
				Candidate:       candCost,
				Accepted:        accepted,
				Current:         st.currentCost,
				Best:            st.bestCost,
				Allocation:      allocation,
				State:           state,
			})
		}
	}

	logging.Debugf(ctx, "sa: %q terminated after %d iterations (T=%.4f), best makespan %d",
		inst.Name, iter, st.temp, st.bestCost)
	return s.result(st, allocator, evals, iter, start, "temperature")
}

// running сообщает, продолжается ли поиск при температуре T. Нулевая или
// отрицательная температура завершает поиск.
func (s *Solver) running(T float64) bool {
	return T > s.Cfg.FinalTemp && T > 0
}

// accept реализует критерий Метрополиса. Случайное число тратится только
// для не улучшающих кандидатов.
func (s *Solver) accept(currCost, candCost int, T float64) bool {
	if candCost < currCost {
		return true
	}
	p := math.Exp(float64(currCost-candCost) / T)
	return s.Rng.Float64() < p
}

// machineIDs возвращает станки для отчётного распределения: 1..Machines,
// либо различные станки задачи.
func (s *Solver) machineIDs(inst *jobshop.Instance) []int {
	if s.Cfg.Machines > 0 {
		return alloc.RangeIDs(1, s.Cfg.Machines)
	}
	return inst.MachineIDs()
}

func (s *Solver) result(st searchState, allocator *alloc.Allocator, evals, iter int, start time.Time, stopped string) (opt.Result, error) {
	allocation, err := allocator.Allocate(st.best)
	if err != nil {
		return opt.Result{}, errors.Annotate(err, "распределение лучшего решения").Err()
	}
	return opt.Result{
		Solution:    st.best.Clone(),
		Makespan:    st.bestCost,
		Allocation:  allocation,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"initial_temp": s.Cfg.InitialTemp,
			"final_temp":   s.Cfg.FinalTemp,
			"cooling_rate": s.Cfg.CoolingRate,
			"T":            st.temp,
			"stopped":      stopped,
		},
	}, nil
}
