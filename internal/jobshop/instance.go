package jobshop

import (
	"sort"

	"go.chromium.org/luci/common/errors"
)

var (
	// ErrEmptyProblem возвращается для задачи без единой работы.
	ErrEmptyProblem = errors.New("в задаче нет ни одной работы")
	// ErrMalformedInput возвращается при разборе некорректного файла задачи.
	ErrMalformedInput = errors.New("некорректный формат задачи")
)

// Task - одна операция: станок и длительность.
type Task struct {
	Machine  int
	Duration int
}

// Job - упорядоченная последовательность операций одной работы.
type Job []Task

// Total возвращает суммарную длительность операций работы.
func (j Job) Total() int {
	total := 0
	for _, t := range j {
		total += t.Duration
	}
	return total
}

// Uses сообщает, есть ли в работе операция на станке machine.
func (j Job) Uses(machine int) bool {
	for _, t := range j {
		if t.Machine == machine {
			return true
		}
	}
	return false
}

func (j Job) Clone() Job {
	if j == nil {
		return nil
	}
	out := make(Job, len(j))
	copy(out, j)
	return out
}

// Solution - порядок работ (приоритет), а не расписание со временем.
type Solution []Job

// Clone возвращает глубокую копию решения.
func (s Solution) Clone() Solution {
	if s == nil {
		return nil
	}
	out := make(Solution, len(s))
	for i, j := range s {
		out[i] = j.Clone()
	}
	return out
}

// Instance - неизменяемая модель задачи.
type Instance struct {
	Name string
	jobs Solution
}

func NewInstance(name string, jobs Solution) (*Instance, error) {
	inst := &Instance{Name: name, jobs: jobs.Clone()}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("задача не инициализирована (nil)")
	}
	if len(inst.jobs) == 0 {
		return errors.Annotate(ErrEmptyProblem, "задача %q", inst.Name).Err()
	}
	for j, job := range inst.jobs {
		for k, t := range job {
			if t.Machine < 0 {
				return errors.Reason("работа %d, операция %d: номер станка должен быть >= 0 (получено %d)", j, k, t.Machine).Err()
			}
			if t.Duration < 0 {
				return errors.Reason("работа %d, операция %d: длительность должна быть >= 0 (получено %d)", j, k, t.Duration).Err()
			}
		}
	}
	return nil
}

// Solution возвращает копию работ в исходном порядке.
func (inst *Instance) Solution() Solution {
	return inst.jobs.Clone()
}

func (inst *Instance) NumJobs() int {
	return len(inst.jobs)
}

func (inst *Instance) NumTasks() int {
	n := 0
	for _, j := range inst.jobs {
		n += len(j)
	}
	return n
}

// MachineIDs возвращает отсортированный список различных станков задачи.
func (inst *Instance) MachineIDs() []int {
	seen := make(map[int]struct{})
	for _, j := range inst.jobs {
		for _, t := range j {
			seen[t.Machine] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for m := range seen {
		ids = append(ids, m)
	}
	sort.Ints(ids)
	return ids
}
