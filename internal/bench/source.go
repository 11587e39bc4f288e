package bench

import (
	"strings"

	"go.chromium.org/luci/common/errors"

	"jobShop/internal/jobshop"
)

// randomPrefix помечает сгенерированный экземпляр: "random:20x5".
const randomPrefix = "random:"

// Source - источник экземпляра задачи: файл или генератор.
type Source struct {
	Path string

	// Параметры генератора, если Path пуст.
	Jobs         int
	Machines     int
	InstanceSeed int64
}

func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return randomPrefix + itoa(s.Jobs) + "x" + itoa(s.Machines)
}

// Load читает файл или генерирует экземпляр с фиксированным сидом.
func (s Source) Load() (*jobshop.Instance, error) {
	if s.Path != "" {
		return jobshop.ReadFile(s.Path)
	}
	return jobshop.RandomInstance(s.Jobs, s.Machines, 1, 99, randForSeed(s.InstanceSeed)), nil
}

// ParseSources разбирает список источников: пути к файлам и "random:JxM".
// Сид генератора фиксирован для каждой позиции в списке.
func ParseSources(args []string, baseInstanceSeed int64) ([]Source, error) {
	sources := make([]Source, 0, len(args))
	for i, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if !strings.HasPrefix(a, randomPrefix) {
			sources = append(sources, Source{Path: a})
			continue
		}

		jm := strings.Split(strings.TrimPrefix(a, randomPrefix), "x")
		if len(jm) != 2 {
			return nil, errors.Reason("источник %q невалидной схемы, пример: random:50x10", a).Err()
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, errors.Annotate(err, "источник %q: ошибка парсинга количества работ", a).Err()
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, errors.Annotate(err, "источник %q: ошибка парсинга количества машин", a).Err()
		}
		if jobs <= 0 || machines <= 0 {
			return nil, errors.Reason("источник %q: количество работ и машин должно быть > 0", a).Err()
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)
		sources = append(sources, Source{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}
	return sources, nil
}
