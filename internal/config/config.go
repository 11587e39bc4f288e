// Package config читает параметры отжига и пакетного прогона из YAML-файла.
//
// Пример:
//
//	annealing:
//	  initial_temp: 500
//	  final_temp: 0.1
//	  cooling_rate: 0.01
//	  machines: 5
//	runner:
//	  runs: 10
//	  seed: 1000
//	  parallelism: 4
//	  per_run_timeout: 30s
package config

import (
	"bytes"
	"io"
	"os"

	"go.chromium.org/luci/common/errors"
	"gopkg.in/yaml.v3"

	"jobShop/internal/bench"
	"jobShop/internal/sa"
)

type File struct {
	Annealing sa.Config    `yaml:"annealing"`
	Runner    bench.Runner `yaml:"runner"`
}

// Default возвращает параметры по умолчанию; ключи, отсутствующие в файле,
// сохраняют эти значения.
func Default() File {
	return File{
		Annealing: sa.DefaultConfig(),
		Runner:    bench.DefaultRunner(),
	}
}

// Load читает файл конфигурации. Пустой путь означает параметры по умолчанию.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Annotate(err, "чтение конфигурации").Err()
	}
	if err := decode(b, &cfg); err != nil {
		return File{}, errors.Annotate(err, "конфигурация %s", path).Err()
	}
	if err := cfg.Validate(); err != nil {
		return File{}, errors.Annotate(err, "конфигурация %s", path).Err()
	}
	return cfg, nil
}

func decode(b []byte, cfg *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (f File) Validate() error {
	if err := f.Annealing.Validate(); err != nil {
		return errors.Annotate(err, "annealing").Err()
	}
	if f.Runner.Runs <= 0 {
		return errors.Reason("runner: runs должно быть > 0 (получено %d)", f.Runner.Runs).Err()
	}
	if f.Runner.Parallelism < 0 {
		return errors.Reason("runner: parallelism должно быть >= 0 (получено %d)", f.Runner.Parallelism).Err()
	}
	if f.Runner.PerRunTimeout < 0 {
		return errors.Reason("runner: per_run_timeout должно быть >= 0 (получено %s)", f.Runner.PerRunTimeout).Err()
	}
	return nil
}
