// Package gridworld provides a small grid-walking environment for tabular
// value learning: the agent starts somewhere on a rectangular grid and is
// rewarded for reaching the goal cell.
//
// Package gridworld は、表形式の価値学習の為の小さなグリッド環境を提供します。
// エージェントは長方形の盤面のどこかから出発し、ゴールのマスに到達すると
// 報酬を得ます。
package gridworld

import (
	"fmt"

	"github.com/sw965/heron"
	"github.com/sw965/heron/train"
)

type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// State is one cell of the grid.
type State struct {
	Row int
	Col int
}

type World struct {
	Rows        int
	Cols        int
	Goal        State
	GoalReward  float32
	StepPenalty float32
}

func (w World) Validate() error {
	if w.Rows < 1 || w.Cols < 1 {
		return fmt.Errorf("盤面サイズが不正: Rows=%d, Cols=%d", w.Rows, w.Cols)
	}
	if !w.contains(w.Goal) {
		return fmt.Errorf("ゴールが盤面の外にある: %v", w.Goal)
	}
	return nil
}

func (w World) contains(state State) bool {
	return state.Row >= 0 && state.Row < w.Rows && state.Col >= 0 && state.Col < w.Cols
}

// LegalActions returns the moves that stay on the board.
func (w World) LegalActions(state State) []Action {
	actions := make([]Action, 0, 4)
	if state.Row > 0 {
		actions = append(actions, Up)
	}
	if state.Row < w.Rows-1 {
		actions = append(actions, Down)
	}
	if state.Col > 0 {
		actions = append(actions, Left)
	}
	if state.Col < w.Cols-1 {
		actions = append(actions, Right)
	}
	return actions
}

func (w World) Transit(state State, action Action) (State, error) {
	next := state
	switch action {
	case Up:
		next.Row -= 1
	case Down:
		next.Row += 1
	case Left:
		next.Col -= 1
	case Right:
		next.Col += 1
	default:
		return State{}, fmt.Errorf("不正なAction: %d", action)
	}

	if !w.contains(next) {
		return State{}, fmt.Errorf("盤面の外に移動しようとした: %v (Action: %d)", state, action)
	}
	return next, nil
}

func (w World) Reward(state State, action Action, next State) float32 {
	if next == w.Goal {
		return w.GoalReward
	}
	return -w.StepPenalty
}

func (w World) IsEnd(state State) bool {
	return state == w.Goal
}

func (w World) NewLogic() train.Logic[State, Action] {
	return train.Logic[State, Action]{
		LegalActionsFunc: w.LegalActions,
		TransitFunc:      w.Transit,
		RewardFunc:       w.Reward,
		IsEndFunc:        w.IsEnd,
	}
}

// NewEngine wires the world to an ε-greedy engine with the given update rule.
func (w World) NewEngine(updateFunc heron.UpdateFunc, epsilon float32, maxSteps int) (train.Engine[State, Action], error) {
	if err := w.Validate(); err != nil {
		return train.Engine[State, Action]{}, err
	}

	selectFunc, err := train.NewEpsilonGreedySelectFunc[State, Action](epsilon)
	if err != nil {
		return train.Engine[State, Action]{}, err
	}

	return train.Engine[State, Action]{
		Logic:      w.NewLogic(),
		SelectFunc: selectFunc,
		UpdateFunc: updateFunc,
		MaxSteps:   maxSteps,
	}, nil
}
