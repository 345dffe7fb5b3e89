// Package heron provides the core data structures for tabular
// reinforcement learning: a Policy (a state–action pair) used as the key a
// value is associated with, and an Episode that owns a root state together
// with the mapping from policies to values. Value-update rules are supplied
// by the caller as an UpdateFunc.
//
// Package heron は、表形式強化学習の為の中核データ構造を提供します。
// Policy（状態と行動のペア）を値に紐づけるキーとして使い、Episodeが
// ルート状態とPolicyから値への写像を所有します。価値の更新則は、呼び出し側が
// UpdateFuncとして与えます。
package heron

// HashFunc computes a deterministic hash of a value. Implementations must be
// pure functions of the value so that equal inputs always hash equally.
type HashFunc[T any] func(T) uint64

// EqualFunc reports structural equality of two values.
type EqualFunc[T any] func(T, T) bool

// UpdateFunc revises a policy value from the current value, the observed
// reward and the successor information (e.g. the best known value among the
// next state's actions). Q-learning, R-learning and similar rules are
// expressed in this shape; see the ql and rl packages.
//
// UpdateFuncは、現在の値・観測された報酬・後続情報（例えば次状態の行動の
// 中で既知の最良値）から、Policyの値を更新します。Q学習・R学習などの更新則は
// この形で表現されます。qlパッケージとrlパッケージを参照してください。
type UpdateFunc func(current, reward, successor float32) float32
