// Package commands содержит подкоманды утилиты jobshop.
package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/data/text"
	"go.chromium.org/luci/common/logging"

	"jobShop/internal/config"
)

// baseRun содержит флаги, общие для команд: журналирование, файл
// конфигурации и параметры отжига. Реализует cli.ContextModificator.
type baseRun struct {
	subcommands.CommandRunBase

	logLevel   logging.Level
	configPath string

	seed     int64
	t0       float64
	tmin     float64
	cooling  float64
	machines int
}

func (r *baseRun) addSharedFlags() {
	r.logLevel = logging.Info
	r.Flags.Var(&r.logLevel, "loglevel", text.Doc(`
	Уровень журналирования: "debug", "info", "warning", "error". По умолчанию "info".
	`))
}

func (r *baseRun) addAnnealingFlags() {
	def := config.Default()
	r.Flags.StringVar(&r.configPath, "config", "", "путь к YAML-файлу конфигурации")
	r.Flags.Int64Var(&r.seed, "seed", def.Runner.BaseSeed, "базовый сид генератора случайных чисел")
	r.Flags.Float64Var(&r.t0, "t0", def.Annealing.InitialTemp, "начальная температура")
	r.Flags.Float64Var(&r.tmin, "tmin", def.Annealing.FinalTemp, "конечная температура")
	r.Flags.Float64Var(&r.cooling, "cooling", def.Annealing.CoolingRate, "скорость охлаждения: T *= 1 - cooling")
	r.Flags.IntVar(&r.machines, "machines", def.Annealing.Machines, text.Doc(`
	число станков для ECT-распределения (номера 1..N); 0 - станки, указанные в задаче
	`))
}

// ModifyContext устанавливает уровень журналирования из флагов.
func (r *baseRun) ModifyContext(ctx context.Context) context.Context {
	return logging.SetLevel(ctx, r.logLevel)
}

// loadConfig читает файл конфигурации и применяет поверх него явно заданные
// флаги.
func (r *baseRun) loadConfig() (config.File, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return config.File{}, err
	}
	r.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Runner.BaseSeed = r.seed
		case "t0":
			cfg.Annealing.InitialTemp = r.t0
		case "tmin":
			cfg.Annealing.FinalTemp = r.tmin
		case "cooling":
			cfg.Annealing.CoolingRate = r.cooling
		case "machines":
			cfg.Annealing.Machines = r.machines
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.File{}, err
	}
	return cfg, nil
}

func printError(a subcommands.Application, err error) {
	fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
}
