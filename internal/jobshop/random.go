package jobshop

import (
	"fmt"
	"math/rand"
)

// RandomInstance генерирует задачу job-shop: каждая работа проходит все
// станки 1..machines ровно по одному разу в случайном порядке.
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if jobs <= 0 || machines <= 0 {
		panic("количество работ и станков должно быть > 0")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("некорректные границы длительности")
	}
	span := maxTime - minTime + 1
	sol := make(Solution, jobs)
	for j := range sol {
		job := make(Job, machines)
		for m, p := range rng.Perm(machines) {
			d := minTime
			if span > 1 {
				d += rng.Intn(span)
			}
			job[m] = Task{Machine: p + 1, Duration: d}
		}
		sol[j] = job
	}
	inst, err := NewInstance(fmt.Sprintf("random-%dx%d", jobs, machines), sol)
	if err != nil {
		panic(err)
	}
	return inst
}
