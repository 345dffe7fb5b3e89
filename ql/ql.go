// Package ql provides the Q-learning value-update rule.
//
// Package ql は、Q学習の価値更新則を提供します。
package ql

import (
	"fmt"

	"github.com/sw965/heron"
	"github.com/sw965/omw/mathx"
)

func UpdateQ(q, nextMaxQ, reward, lr, discountRate float32) float32 {
	qRatio := 1.0 - lr
	newQ := reward + discountRate*nextMaxQ
	return (qRatio * q) + (lr * newQ)
}

// New returns an update rule that applies UpdateQ with the successor
// information as nextMaxQ.
//
// Newは、後続情報をnextMaxQとしてUpdateQを適用する更新則を返します。
func New(lr, discountRate float32) (heron.UpdateFunc, error) {
	if lr <= 0 || lr > 1 || mathx.IsNaN(lr) {
		return nil, fmt.Errorf("lrが不正(<=0/>1/NaN): lr=%.6g", lr)
	}

	if discountRate < 0 || discountRate > 1 || mathx.IsNaN(discountRate) {
		return nil, fmt.Errorf("discountRateが不正(<0/>1/NaN): discountRate=%.6g", discountRate)
	}

	return func(current, reward, successor float32) float32 {
		return UpdateQ(current, successor, reward, lr, discountRate)
	}, nil
}
