package train

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/sw965/heron"
	"github.com/sw965/omw/mathx"
	"github.com/sw965/omw/mathx/randx"
)

// SelectFunc chooses one of the legal actions for a state, consulting the
// episode's recorded values. Actions never updated are treated as having
// value 0.
type SelectFunc[S, A comparable] func(*heron.Episode[S, A], S, []A, *rand.Rand) (A, error)

// MaxSelectFunc chooses greedily by stored value, breaking ties at random.
//
// MaxSelectFuncは、保持されている値に基づいて貪欲に選択し、
// 同値の場合はランダムに選びます。
func MaxSelectFunc[S, A comparable](episode *heron.Episode[S, A], state S, legalActions []A, rng *rand.Rand) (A, error) {
	if len(legalActions) == 0 {
		var zero A
		return zero, ErrEmptyLegalActions
	}

	max := episode.ValueOrDefault(heron.NewPolicy(state, legalActions[0]), 0.0)
	actions := []A{legalActions[0]}

	for _, a := range legalActions[1:] {
		v := episode.ValueOrDefault(heron.NewPolicy(state, a), 0.0)
		switch {
		case v > max:
			max = v
			actions = []A{a}
		case v == max:
			actions = append(actions, a)
		}
	}
	return randx.Choice(actions, rng)
}

// RandomSelectFunc ignores the episode and chooses uniformly.
func RandomSelectFunc[S, A comparable](episode *heron.Episode[S, A], state S, legalActions []A, rng *rand.Rand) (A, error) {
	if len(legalActions) == 0 {
		var zero A
		return zero, ErrEmptyLegalActions
	}
	return randx.Choice(legalActions, rng)
}

// NewEpsilonGreedySelectFunc explores uniformly with probability epsilon
// and otherwise selects greedily.
func NewEpsilonGreedySelectFunc[S, A comparable](epsilon float32) (SelectFunc[S, A], error) {
	if epsilon < 0 || epsilon > 1 || mathx.IsNaN(epsilon) {
		return nil, fmt.Errorf("epsilonが不正(<0/>1/NaN): epsilon=%.6g", epsilon)
	}

	return func(episode *heron.Episode[S, A], state S, legalActions []A, rng *rand.Rand) (A, error) {
		if len(legalActions) == 0 {
			var zero A
			return zero, ErrEmptyLegalActions
		}
		if rng.Float32() < epsilon {
			return randx.Choice(legalActions, rng)
		}
		return MaxSelectFunc(episode, state, legalActions, rng)
	}, nil
}

// NewSoftmaxSelectFunc samples actions with Boltzmann weights over the
// stored values. Lower temperatures approach greedy selection.
func NewSoftmaxSelectFunc[S, A comparable](temperature float32) (SelectFunc[S, A], error) {
	if temperature <= 0 || mathx.IsNaN(temperature) || mathx.IsInf(temperature, 0) {
		return nil, fmt.Errorf("temperatureが不正(<=0/NaN/Inf): temperature=%.6g", temperature)
	}

	return func(episode *heron.Episode[S, A], state S, legalActions []A, rng *rand.Rand) (A, error) {
		n := len(legalActions)
		if n == 0 {
			var zero A
			return zero, ErrEmptyLegalActions
		}

		vs := make([]float32, n)
		for i, a := range legalActions {
			vs[i] = episode.ValueOrDefault(heron.NewPolicy(state, a), 0.0) / temperature
		}

		// オーバーフロー対策として最大値を引いてからexpを取る
		maxV := slices.Max(vs)
		ws := make([]float32, n)
		for i, v := range vs {
			ws[i] = math32.Exp(v - maxV)
		}

		idx, err := randx.IntByWeight(ws, rng)
		if err != nil {
			var zero A
			return zero, err
		}
		return legalActions[idx], nil
	}, nil
}
