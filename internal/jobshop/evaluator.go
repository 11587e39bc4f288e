package jobshop

// Evaluate возвращает оценку makespan: максимальную по работам суммарную
// длительность операций. Конкуренция работ за станки не учитывается.
func Evaluate(s Solution) int {
	best := 0
	for _, job := range s {
		if t := job.Total(); t > best {
			best = t
		}
	}
	return best
}
