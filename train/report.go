package train

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes the returns of a batch of trajectories.
type Report struct {
	Episodes int
	Mean     float64
	Std      float64
	Min      float64
	Max      float64
}

func NewReport[S, A comparable](experiencess []Experiences[S, A]) Report {
	n := len(experiencess)
	if n == 0 {
		return Report{}
	}

	returns := make([]float64, n)
	for i, experiences := range experiencess {
		returns[i] = float64(experiences.TotalReward())
	}

	mean, std := stat.MeanStdDev(returns, nil)
	if n < 2 {
		std = 0.0
	}

	return Report{
		Episodes: n,
		Mean:     mean,
		Std:      std,
		Min:      floats.Min(returns),
		Max:      floats.Max(returns),
	}
}
