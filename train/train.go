// Package train runs tabular value-learning episodes over a caller-defined
// environment, recording state–action values into a heron.Episode through a
// pluggable update rule.
//
// Package train は、呼び出し側が定義した環境の上で表形式の価値学習
// エピソードを実行し、差し替え可能な更新則を通じて状態と行動の価値を
// heron.Episodeに記録します。
package train

import (
	"errors"
	"fmt"
)

var (
	ErrNilLogicFunc  = errors.New("Logicエラー: フィールドの関数がnilです")
	ErrNilEngineFunc = errors.New("Engineエラー: フィールドの関数がnilです")

	ErrEmptyLegalActions = errors.New("legalActionsエラー: 要素数が0です")

	ErrInvalidMaxSteps = errors.New("MaxStepsエラー: 1以上である必要があります")
	ErrEmptyRngs       = errors.New("rngsエラー: 要素数が0です")
)

type LegalActionsFunc[S, A comparable] func(S) []A
type TransitFunc[S, A comparable] func(S, A) (S, error)
type RewardFunc[S, A comparable] func(S, A, S) float32
type IsEndFunc[S comparable] func(S) bool

type Logic[S, A comparable] struct {
	LegalActionsFunc LegalActionsFunc[S, A]
	TransitFunc      TransitFunc[S, A]
	RewardFunc       RewardFunc[S, A]
	IsEndFunc        IsEndFunc[S]
}

func (l Logic[S, A]) Validate() error {
	if l.LegalActionsFunc == nil {
		return fmt.Errorf("%w: LegalActionsFunc", ErrNilLogicFunc)
	}
	if l.TransitFunc == nil {
		return fmt.Errorf("%w: TransitFunc", ErrNilLogicFunc)
	}
	if l.RewardFunc == nil {
		return fmt.Errorf("%w: RewardFunc", ErrNilLogicFunc)
	}
	if l.IsEndFunc == nil {
		return fmt.Errorf("%w: IsEndFunc", ErrNilLogicFunc)
	}
	return nil
}
