package alloc

import "jobShop/internal/jobshop"

// JobsByMachine возвращает для каждого станка номера работ (с 1, по позиции
// в решении), чьи операции на нём выполняются. Работа указывается столько
// раз, сколько у неё операций на этом станке.
func JobsByMachine(s jobshop.Solution) map[int][]int {
	out := make(map[int][]int)
	for j, job := range s {
		for _, t := range job {
			out[t.Machine] = append(out[t.Machine], j+1)
		}
	}
	return out
}
