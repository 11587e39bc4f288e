package jobshop

import "go.chromium.org/luci/common/errors"

// SameWork сообщает, совпадают ли мультимножества операций двух решений.
func SameWork(a, b Solution) bool {
	return ValidateWork(a, b) == nil
}

// ValidateWork проверяет, что got получено из want перестановкой работ и
// перестановкой операций внутри работ.
func ValidateWork(want, got Solution) error {
	if len(want) != len(got) {
		return errors.Reason("число работ должно быть %d (получено %d)", len(want), len(got)).Err()
	}
	counts := make(map[Task]int)
	for _, j := range want {
		for _, t := range j {
			counts[t]++
		}
	}
	for i, j := range got {
		for _, t := range j {
			if counts[t] == 0 {
				return errors.Reason("работа %d: лишняя операция %+v", i, t).Err()
			}
			counts[t]--
		}
	}
	for t, c := range counts {
		if c != 0 {
			return errors.Reason("операция %+v потеряна %d раз", t, c).Err()
		}
	}

	// Перестановка работ: каждая работа got должна совпасть с какой-то
	// ещё не использованной работой want по мультимножеству операций.
	used := make([]bool, len(want))
	for i, g := range got {
		found := false
		for k, w := range want {
			if used[k] || !sameTasks(w, g) {
				continue
			}
			used[k] = true
			found = true
			break
		}
		if !found {
			return errors.Reason("работа %d не является перестановкой ни одной исходной работы", i).Err()
		}
	}
	return nil
}

func sameTasks(a, b Job) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Task]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	for _, t := range b {
		if counts[t] == 0 {
			return false
		}
		counts[t]--
	}
	return true
}
