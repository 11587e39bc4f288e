package sa

import (
	"math"

	"go.chromium.org/luci/common/errors"
)

type Config struct {
	InitialTemp float64 `yaml:"initial_temp"`
	FinalTemp   float64 `yaml:"final_temp"`
	// CoolingRate - доля, на которую температура снижается за итерацию:
	// T *= 1 - CoolingRate.
	CoolingRate float64 `yaml:"cooling_rate"`

	// Machines - число станков (номера 1..Machines) для отчётного распределения.
	// 0 - использовать станки, указанные в задаче.
	Machines int `yaml:"machines"`
}

func DefaultConfig() Config {
	return Config{
		InitialTemp: 500.0,
		FinalTemp:   0.1,
		CoolingRate: 0.01,

		Machines: 0,
	}
}

func (c Config) Validate() error {
	if c.InitialTemp <= 0 || math.IsInf(c.InitialTemp, 0) || math.IsNaN(c.InitialTemp) {
		return errors.Reason(
			"InitialTemp должно быть конечным и > 0 (получено %f)",
			c.InitialTemp,
		).Err()
	}
	if c.FinalTemp <= 0 || math.IsNaN(c.FinalTemp) {
		return errors.Reason(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		).Err()
	}
	if c.FinalTemp >= c.InitialTemp {
		return errors.Reason(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		).Err()
	}
	// CoolingRate >= 1 допустим: температура падает до нуля и поиск
	// останавливается.
	if c.CoolingRate <= 0 || math.IsInf(c.CoolingRate, 0) || math.IsNaN(c.CoolingRate) {
		return errors.Reason(
			"CoolingRate должно быть конечным и > 0 (получено %f)",
			c.CoolingRate,
		).Err()
	}
	if c.Machines < 0 {
		return errors.Reason(
			"Machines должно быть >= 0 (получено %d)",
			c.Machines,
		).Err()
	}
	return nil
}

// MaxIterations возвращает число итераций геометрического охлаждения от
// InitialTemp до FinalTemp.
func (c Config) MaxIterations() int {
	if c.CoolingRate >= 1 {
		return 1
	}
	n := math.Log(c.FinalTemp/c.InitialTemp) / math.Log(1-c.CoolingRate)
	return int(math.Ceil(n))
}
