package bench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	fs := make([]float64, len(values))
	best := values[0]
	for i, v := range values {
		if v < best {
			best = v
		}
		fs[i] = float64(v)
	}
	fl := CalcFloatStats(fs)

	s.Best = best
	s.Mean = fl.Mean
	s.Std = fl.Std
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats считает минимум, среднее и выборочное стандартное отклонение
// (с поправкой n-1; для одного значения отклонение равно 0).
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = floats.Min(values)
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	return s
}
