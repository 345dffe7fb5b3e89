package heron

import (
	"github.com/sw965/heron/hashx"
)

// Policy denotes the choice of doing Action while in State. It owns
// immutable copies of both, so a Policy never outlives the data it refers
// to. Two policies are equal iff their states are equal and their actions
// are equal; since S and A are comparable value types, this is Go's ==.
// A Policy carries no value itself; values live in an Episode's mapping.
//
// Policyは、「Stateに居るときにActionを行う」という選択を表します。
// 状態と行動の不変なコピーを所有する為、参照先より長生きする事はありません。
// 2つのPolicyは、状態同士と行動同士がそれぞれ等しい場合にのみ等しく、
// SとAはcomparableな値型なので、Goの == がそのまま等価判定になります。
// Policy自身は値を持たず、値はEpisodeの写像が保持します。
type Policy[S, A comparable] struct {
	State  S
	Action A
}

func NewPolicy[S, A comparable](state S, action A) Policy[S, A] {
	return Policy[S, A]{State: state, Action: action}
}

type Policies[S, A comparable] []Policy[S, A]

// NewPolicyHashFunc adapts a state hash func and an action hash func into a
// hash func over policies, combining the state hash and then the action
// hash, in that order, via hashx.Combine. For any stateHash and actionHash
// that are pure functions of their input, equal policies hash equally.
//
// NewPolicyHashFuncは、状態のハッシュ関数と行動のハッシュ関数から、
// Policyのハッシュ関数を作ります。状態のハッシュ、次に行動のハッシュという
// 固定順でhashx.Combineによって合成します。
func NewPolicyHashFunc[S, A comparable](stateHash HashFunc[S], actionHash HashFunc[A]) HashFunc[Policy[S, A]] {
	return func(p Policy[S, A]) uint64 {
		var seed uint64
		hashx.Combine(&seed, stateHash(p.State))
		hashx.Combine(&seed, actionHash(p.Action))
		return seed
	}
}

// NewPolicyEqualFunc returns the equality func for policies, delegating to ==.
func NewPolicyEqualFunc[S, A comparable]() EqualFunc[Policy[S, A]] {
	return func(a, b Policy[S, A]) bool {
		return a == b
	}
}
