// Package ucb provides UCB1-style exploration over the per-action
// statistics of an episode.
//
// Package ucb は、Episodeの行動ごとの統計に基づくUCB1系の探索を提供します。
package ucb

import (
	"math/rand/v2"

	"github.com/sw965/heron"
	"github.com/sw965/heron/train"
	omwmath "github.com/sw965/omw/math"
	"github.com/sw965/omw/mathx"
	"github.com/sw965/omw/mathx/randx"
)

type Func func(v float32, total, n int) float32

func NewStandardFunc(c float32) Func {
	return func(v float32, total, n int) float32 {
		return v + c*mathx.Sqrt(mathx.Log(float32(total+1))/float32(n+1))
	}
}

type Calculator struct {
	Func       Func
	TotalValue float32
	Trial      int
}

func (c *Calculator) AverageValue() float32 {
	return c.TotalValue / float32(c.Trial+1)
}

func (c *Calculator) Calculation(totalTrial int) float32 {
	return c.Func(c.AverageValue(), totalTrial, c.Trial)
}

type Manager[A comparable] map[A]*Calculator

// NewManager seeds one calculator per legal action, starting from the
// value the episode has recorded for that action (0 when absent).
func NewManager[S, A comparable](episode *heron.Episode[S, A], state S, legalActions []A, f Func) Manager[A] {
	m := Manager[A]{}
	for _, a := range legalActions {
		m[a] = &Calculator{
			Func:       f,
			TotalValue: episode.ValueOrDefault(heron.NewPolicy(state, a), 0.0),
		}
	}
	return m
}

func (m Manager[A]) TotalTrial() int {
	t := 0
	for _, c := range m {
		t += c.Trial
	}
	return t
}

func (m Manager[A]) Max() float32 {
	total := m.TotalTrial()
	ucbs := make([]float32, 0, len(m))
	for _, c := range m {
		ucbs = append(ucbs, c.Calculation(total))
	}
	return omwmath.Max(ucbs...)
}

func (m Manager[A]) MaxKeys() []A {
	max := m.Max()
	total := m.TotalTrial()
	as := make([]A, 0, len(m))
	for a, c := range m {
		if c.Calculation(total) == max {
			as = append(as, a)
		}
	}
	return as
}

// Selector keeps one Manager per visited state so that trial counts
// persist across selection calls. The legal-action set of a state is
// assumed to be stable between calls.
type Selector[S, A comparable] struct {
	Func     Func
	managers map[S]Manager[A]
}

func NewSelector[S, A comparable](f Func) *Selector[S, A] {
	return &Selector[S, A]{
		Func:     f,
		managers: map[S]Manager[A]{},
	}
}

func (s *Selector[S, A]) Manager(state S) (Manager[A], bool) {
	m, ok := s.managers[state]
	return m, ok
}

// SelectFunc adapts the selector into a train.SelectFunc. Each call picks
// an action with the highest UCB score (ties broken at random), then
// accrues the episode's current value for that action into its calculator.
func (s *Selector[S, A]) SelectFunc() train.SelectFunc[S, A] {
	return func(episode *heron.Episode[S, A], state S, legalActions []A, rng *rand.Rand) (A, error) {
		if len(legalActions) == 0 {
			var zero A
			return zero, train.ErrEmptyLegalActions
		}

		m, ok := s.managers[state]
		if !ok {
			m = NewManager(episode, state, legalActions, s.Func)
			s.managers[state] = m
		}

		action, err := randx.Choice(m.MaxKeys(), rng)
		if err != nil {
			var zero A
			return zero, err
		}

		c := m[action]
		c.Trial += 1
		c.TotalValue += episode.ValueOrDefault(heron.NewPolicy(state, action), 0.0)
		return action, nil
	}
}
