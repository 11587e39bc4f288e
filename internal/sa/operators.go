package sa

import (
	"cmp"
	"math/rand"
	"slices"

	"jobShop/internal/jobshop"
)

// Все операторы переставляют решение на месте и возвращают его же. Работы и
// операции только переставляются: ни одна пара (станок, длительность) не
// создаётся и не теряется.

// Perturb применяет операторы окрестности в фиксированном порядке.
func Perturb(s jobshop.Solution, rng *rand.Rand) jobshop.Solution {
	SwapRandomJobs(s, rng)
	ReorderCriticalPath(s)
	PromoteBusiestMachineJob(s)
	PromoteShortestTasks(s)
	return s
}

// SwapRandomJobs меняет местами две случайные различные работы.
// Для решения из одной работы ничего не делает и не тратит случайные числа.
func SwapRandomJobs(s jobshop.Solution, rng *rand.Rand) jobshop.Solution {
	if len(s) < 2 {
		return s
	}
	i := rng.Intn(len(s))
	j := rng.Intn(len(s) - 1)
	if j >= i {
		j++
	}
	s[i], s[j] = s[j], s[i]
	return s
}

// ReorderCriticalPath упорядочивает работы по убыванию суммарной длительности
// (устойчивая сортировка) и меняет местами две самые загруженные.
// При двух работах и меньше решение не меняется.
func ReorderCriticalPath(s jobshop.Solution) jobshop.Solution {
	if len(s) <= 2 {
		return s
	}
	slices.SortStableFunc(s, func(a, b jobshop.Job) int {
		return cmp.Compare(b.Total(), a.Total())
	})
	s[0], s[1] = s[1], s[0]
	return s
}

// PromoteBusiestMachineJob (MRPT) находит самый загруженный станок (при
// равенстве нагрузок - с меньшим номером) и переносит в начало работу с
// наибольшей суммарной длительностью среди работ, использующих этот станок
// (при равенстве - более раннюю). Если станок использует не более одной
// работы, решение не меняется.
func PromoteBusiestMachineJob(s jobshop.Solution) jobshop.Solution {
	loads := make(map[int]int)
	for _, job := range s {
		for _, t := range job {
			loads[t.Machine] += t.Duration
		}
	}
	if len(loads) == 0 {
		return s
	}

	busiest, busiestLoad := 0, -1
	for m, load := range loads {
		if load > busiestLoad || (load == busiestLoad && m < busiest) {
			busiest, busiestLoad = m, load
		}
	}

	users := 0
	longest, longestTotal := -1, -1
	for j, job := range s {
		if !job.Uses(busiest) {
			continue
		}
		users++
		if total := job.Total(); total > longestTotal {
			longest, longestTotal = j, total
		}
	}
	if users <= 1 {
		return s
	}
	moveToFront(s, longest)
	return s
}

// PromoteShortestTasks в каждой работе из нескольких операций переносит в
// начало первую операцию минимальной длительности.
func PromoteShortestTasks(s jobshop.Solution) jobshop.Solution {
	for _, job := range s {
		if len(job) <= 1 {
			continue
		}
		shortest := 0
		for k := 1; k < len(job); k++ {
			if job[k].Duration < job[shortest].Duration {
				shortest = k
			}
		}
		moveToFront(job, shortest)
	}
	return s
}

// moveToFront извлекает элемент из позиции i и вставляет его в начало,
// сдвигая предшествующие элементы вправо.
func moveToFront[T any](p []T, i int) {
	if i <= 0 {
		return
	}
	val := p[i]
	copy(p[1:i+1], p[:i])
	p[0] = val
}
