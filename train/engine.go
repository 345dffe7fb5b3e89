package train

import (
	"fmt"
	"math/rand/v2"

	"github.com/sw965/heron"
	"github.com/sw965/omw/parallel"
)

type Engine[S, A comparable] struct {
	Logic      Logic[S, A]
	SelectFunc SelectFunc[S, A]
	UpdateFunc heron.UpdateFunc
	MaxSteps   int
}

func (e Engine[S, A]) Validate() error {
	if err := e.Logic.Validate(); err != nil {
		return err
	}

	if e.SelectFunc == nil {
		return fmt.Errorf("%w: SelectFunc", ErrNilEngineFunc)
	}

	if e.UpdateFunc == nil {
		return fmt.Errorf("%w: UpdateFunc", ErrNilEngineFunc)
	}

	if e.MaxSteps < 1 {
		return fmt.Errorf("%w: MaxSteps=%d", ErrInvalidMaxSteps, e.MaxSteps)
	}
	return nil
}

// successorValue is the best recorded value among the legal actions of
// state, 0 at terminal states and for actions never updated.
func (e Engine[S, A]) successorValue(episode *heron.Episode[S, A], state S) float32 {
	if e.Logic.IsEndFunc(state) {
		return 0.0
	}

	legalActions := e.Logic.LegalActionsFunc(state)
	if len(legalActions) == 0 {
		return 0.0
	}

	max := episode.ValueOrDefault(heron.NewPolicy(state, legalActions[0]), 0.0)
	for _, a := range legalActions[1:] {
		v := episode.ValueOrDefault(heron.NewPolicy(state, a), 0.0)
		if v > max {
			max = v
		}
	}
	return max
}

// ContinueEpisode plays one trajectory from init, accumulating policy-value
// updates into an existing episode. It stops at a terminal state, when no
// legal action remains, or after MaxSteps transitions. The recorded
// experiences are returned in step order.
//
// ContinueEpisodeは、initから1本の軌跡を実行し、既存のEpisodeに価値の
// 更新を蓄積します。終端状態に達するか、合法な行動が無くなるか、
// MaxSteps回遷移した時点で停止します。
func (e Engine[S, A]) ContinueEpisode(episode *heron.Episode[S, A], init S, rng *rand.Rand) (Experiences[S, A], error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	experiences := make(Experiences[S, A], 0, e.MaxSteps)
	state := init

	for t := 0; t < e.MaxSteps; t++ {
		if e.Logic.IsEndFunc(state) {
			break
		}

		legalActions := e.Logic.LegalActionsFunc(state)
		// 行動が存在しない状態はエピソードの終わりとして扱う
		if len(legalActions) == 0 {
			break
		}

		action, err := e.SelectFunc(episode, state, legalActions, rng)
		if err != nil {
			return experiences, err
		}

		next, err := e.Logic.TransitFunc(state, action)
		if err != nil {
			return experiences, err
		}

		reward := e.Logic.RewardFunc(state, action, next)
		experiences = append(experiences, Experience[S, A]{
			State:  state,
			Action: action,
			Reward: reward,
			Next:   next,
			End:    e.Logic.IsEndFunc(next),
		})

		p := heron.NewPolicy(state, action)
		current := episode.ValueOrDefault(p, 0.0)
		successor := e.successorValue(episode, next)
		if err := episode.Update(p, e.UpdateFunc(current, reward, successor)); err != nil {
			return experiences, err
		}

		state = next
	}
	return experiences, nil
}

// RunEpisode creates a fresh episode rooted at init and plays one
// trajectory into it.
func (e Engine[S, A]) RunEpisode(init S, rng *rand.Rand) (*heron.Episode[S, A], Experiences[S, A], error) {
	episode := heron.NewEpisode[S, A](init)
	experiences, err := e.ContinueEpisode(episode, init, rng)
	return episode, experiences, err
}

// RunEpisodes plays one episode per init state. Work is distributed over
// len(rngs) workers; each episode is confined to the worker that owns it,
// so no episode is ever shared between goroutines.
//
// RunEpisodesは、初期状態ごとに1つのエピソードを実行します。処理は
// len(rngs)個のワーカーに分配され、各エピソードはそれを所有するワーカーに
// 閉じ込められる為、ゴルーチン間で共有される事はありません。
func (e Engine[S, A]) RunEpisodes(inits []S, rngs []*rand.Rand) ([]*heron.Episode[S, A], []Experiences[S, A], error) {
	if err := e.Validate(); err != nil {
		return nil, nil, err
	}

	if len(rngs) == 0 {
		return nil, nil, ErrEmptyRngs
	}

	n := len(inits)
	p := len(rngs)
	episodes := make([]*heron.Episode[S, A], n)
	experiencess := make([]Experiences[S, A], n)

	err := parallel.For(n, p, func(workerId, idx int) error {
		rng := rngs[workerId]
		episode, experiences, err := e.RunEpisode(inits[idx], rng)
		if err != nil {
			return err
		}
		episodes[idx] = episode
		experiencess[idx] = experiences
		return nil
	})
	return episodes, experiencess, err
}
