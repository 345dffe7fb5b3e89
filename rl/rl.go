// Package rl provides the R-learning (average-reward) value-update rule.
//
// Package rl は、R学習（平均報酬型）の価値更新則を提供します。
package rl

import (
	"fmt"

	"github.com/sw965/heron"
	"github.com/sw965/omw/mathx"
)

// Learner holds the average-reward estimate rho that R-learning maintains
// alongside the policy values. One Learner serves one learning run; it is
// not safe for concurrent use.
type Learner struct {
	lr    float32
	rhoLr float32
	rho   float32
}

func NewLearner(lr, rhoLr float32) (*Learner, error) {
	if lr <= 0 || lr > 1 || mathx.IsNaN(lr) {
		return nil, fmt.Errorf("lrが不正(<=0/>1/NaN): lr=%.6g", lr)
	}

	if rhoLr <= 0 || rhoLr > 1 || mathx.IsNaN(rhoLr) {
		return nil, fmt.Errorf("rhoLrが不正(<=0/>1/NaN): rhoLr=%.6g", rhoLr)
	}

	return &Learner{lr: lr, rhoLr: rhoLr}, nil
}

// Rho returns the current average-reward estimate.
func (l *Learner) Rho() float32 {
	return l.rho
}

// UpdateFunc returns the update rule. Each application revises the policy
// value toward reward - rho + successor, and moves rho by the same
// temporal-difference error scaled by rhoLr.
//
// UpdateFuncは更新則を返します。適用のたびに、Policyの値を
// reward - rho + successor へ近づけ、同じTD誤差にrhoLrを掛けた分だけ
// rhoを動かします。
func (l *Learner) UpdateFunc() heron.UpdateFunc {
	return func(current, reward, successor float32) float32 {
		delta := reward - l.rho + successor - current
		l.rho += l.rhoLr * delta
		return current + l.lr*delta
	}
}
