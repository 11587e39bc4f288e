package jobshop

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.chromium.org/luci/common/errors"
)

// Read разбирает задачу из CSV: одна строка - одна работа, каждое поле -
// пара "станок,длительность" в кавычках. Строки без кавычек с чётным числом
// полей читаются как плоский список пар.
func Read(r io.Reader, name string) (*Instance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var jobs Solution
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotate(ErrMalformedInput, "%s: %s", name, err).Err()
		}
		line, _ := cr.FieldPos(0)
		job, err := parseRecord(record)
		if err != nil {
			return nil, errors.Annotate(ErrMalformedInput, "%s:%d: %s", name, line, err).Err()
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return nil, errors.Annotate(ErrEmptyProblem, "%s", name).Err()
	}
	inst, err := NewInstance(name, jobs)
	if err != nil {
		return nil, errors.Annotate(ErrMalformedInput, "%s: %s", name, err).Err()
	}
	return inst, nil
}

// ReadFile читает задачу из файла; имя задачи - имя файла без расширения.
func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotate(err, "чтение задачи").Err()
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, name)
}

func parseRecord(record []string) (Job, error) {
	paired := 0
	for _, field := range record {
		if strings.Contains(field, ",") {
			paired++
		}
	}

	switch {
	case paired == len(record):
		job := make(Job, 0, len(record))
		for i, field := range record {
			parts := strings.Split(field, ",")
			if len(parts) != 2 {
				return nil, errors.Reason("поле %d: ожидается \"станок,длительность\" (получено %q)", i+1, field).Err()
			}
			t, err := parseTask(parts[0], parts[1])
			if err != nil {
				return nil, errors.Annotate(err, "поле %d", i+1).Err()
			}
			job = append(job, t)
		}
		return job, nil
	case paired == 0:
		if len(record)%2 != 0 {
			return nil, errors.Reason("нечётное число полей %d, ожидаются пары станок/длительность", len(record)).Err()
		}
		job := make(Job, 0, len(record)/2)
		for i := 0; i < len(record); i += 2 {
			t, err := parseTask(record[i], record[i+1])
			if err != nil {
				return nil, errors.Annotate(err, "поля %d-%d", i+1, i+2).Err()
			}
			job = append(job, t)
		}
		return job, nil
	default:
		return nil, errors.Reason("смешаны поля в кавычках и без").Err()
	}
}

func parseTask(machine, duration string) (Task, error) {
	m, err := strconv.Atoi(strings.TrimSpace(machine))
	if err != nil {
		return Task{}, errors.Reason("номер станка %q не является целым числом", machine).Err()
	}
	d, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return Task{}, errors.Reason("длительность %q не является целым числом", duration).Err()
	}
	if m < 0 {
		return Task{}, errors.Reason("номер станка должен быть >= 0 (получено %d)", m).Err()
	}
	if d < 0 {
		return Task{}, errors.Reason("длительность должна быть >= 0 (получено %d)", d).Err()
	}
	return Task{Machine: m, Duration: d}, nil
}

// Write записывает работы в формате, который читает Read.
func Write(w io.Writer, jobs Solution) error {
	cw := csv.NewWriter(w)
	for i, job := range jobs {
		if len(job) == 0 {
			return errors.Reason("работа %d не содержит операций", i).Err()
		}
		row := make([]string, len(job))
		for k, t := range job {
			row[k] = strconv.Itoa(t.Machine) + "," + strconv.Itoa(t.Duration)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteFile(path string, jobs Solution) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, jobs); err != nil {
		f.Close()
		return errors.Annotate(err, "запись задачи %s", path).Err()
	}
	return f.Close()
}
