// Package alloc реализует жадное распределение операций по станкам по правилу
// наименьшего времени завершения (ECT). Результат используется только для
// отчёта и не влияет на целевую функцию.
package alloc

import (
	"sort"

	"go.chromium.org/luci/common/errors"

	"jobShop/internal/jobshop"
)

// ErrNoMachines возвращается, если операции некуда назначить.
var ErrNoMachines = errors.New("нет станков для распределения операций")

// MachineTimes - время завершения по каждому станку из известного набора.
type MachineTimes map[int]int

// NewMachineTimes возвращает нулевые времена для станков ids.
func NewMachineTimes(ids []int) MachineTimes {
	mt := make(MachineTimes, len(ids))
	for _, id := range ids {
		mt[id] = 0
	}
	return mt
}

// RangeIDs возвращает номера станков lo..hi включительно.
func RangeIDs(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	ids := make([]int, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		ids = append(ids, id)
	}
	return ids
}

// IDs возвращает номера станков по возрастанию.
func (mt MachineTimes) IDs() []int {
	ids := make([]int, 0, len(mt))
	for id := range mt {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (mt MachineTimes) Clone() MachineTimes {
	out := make(MachineTimes, len(mt))
	for id, t := range mt {
		out[id] = t
	}
	return out
}

// Allocation - результат распределения.
type Allocation struct {
	// Jobs повторяет структуру решения, но в каждой операции записан
	// станок, выбранный эвристикой.
	Jobs jobshop.Solution
	// Completion - итоговое время завершения каждого станка.
	Completion MachineTimes
	// Timeline[m] - время завершения станка m после каждой назначенной операции.
	Timeline map[int][]int
}

// Makespan возвращает наибольшее время завершения среди станков.
func (a Allocation) Makespan() int {
	best := 0
	for _, t := range a.Completion {
		if t > best {
			best = t
		}
	}
	return best
}

// Allocator назначает операции на фиксированный набор станков. Номера
// станков сортируются один раз, в NewAllocator.
type Allocator struct {
	ids   []int
	start []int
}

// NewAllocator запоминает станки из times и их начальные времена. Карта
// times вызывающего не изменяется.
func NewAllocator(times MachineTimes) *Allocator {
	ids := times.IDs()
	start := make([]int, len(ids))
	for i, id := range ids {
		start[i] = times[id]
	}
	return &Allocator{ids: ids, start: start}
}

// Allocate обходит работы в порядке решения и назначает каждую операцию на
// станок с наименьшим текущим временем завершения (при равенстве - станок с
// меньшим номером), независимо от станка, указанного в задаче.
func (a *Allocator) Allocate(s jobshop.Solution) (Allocation, error) {
	completion := make([]int, len(a.start))
	copy(completion, a.start)
	timeline := make([][]int, len(a.ids))

	jobs := make(jobshop.Solution, len(s))
	for j, job := range s {
		allocated := make(jobshop.Job, 0, len(job))
		for _, task := range job {
			if len(a.ids) == 0 {
				return Allocation{}, ErrNoMachines
			}
			best := 0
			for i := 1; i < len(completion); i++ {
				if completion[i] < completion[best] {
					best = i
				}
			}
			completion[best] += task.Duration
			timeline[best] = append(timeline[best], completion[best])
			allocated = append(allocated, jobshop.Task{Machine: a.ids[best], Duration: task.Duration})
		}
		jobs[j] = allocated
	}

	out := Allocation{
		Jobs:       jobs,
		Completion: make(MachineTimes, len(a.ids)),
		Timeline:   make(map[int][]int, len(a.ids)),
	}
	for i, id := range a.ids {
		out.Completion[id] = completion[i]
		out.Timeline[id] = timeline[i]
	}
	return out, nil
}

// Allocate распределяет решение s по станкам из times, см. Allocator.
func Allocate(s jobshop.Solution, times MachineTimes) (Allocation, error) {
	return NewAllocator(times).Allocate(s)
}
