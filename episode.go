package heron

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/sw965/omw/mathx"
)

var (
	ErrNoRoot         = errors.New("Episodeエラー: ルート状態が設定されていません")
	ErrRootAlreadySet = errors.New("Episodeエラー: ルート状態は既に設定されています")
	ErrPolicyNotFound = errors.New("Episodeエラー: Policyが存在しません")
	ErrNonFiniteValue = errors.New("Episodeエラー: 値が不正です（NaN/Inf）")
)

// Episode represents one rooted trajectory of interaction. It exclusively
// owns its root state and the authoritative mapping from Policy to value.
// The tree topology formed by actions leading to next states is implicit in
// the set of policies sharing state prefixes; it is never materialized as
// parent/child links (see PoliciesFrom). An Episode has no internal
// synchronization; confine it to a single goroutine or guard it with one
// lock.
//
// Episodeは、1回のルート付き軌跡を表します。ルート状態と、Policyから値への
// 正規の写像を排他的に所有します。行動が次の状態へ繋がる木構造は、状態を
// 共有するPolicyの集合として暗黙的に表され、親子リンクとしては保持されません
// （PoliciesFromを参照）。Episodeは内部で同期を行わない為、単一のゴルーチンに
// 閉じ込めるか、1つのロックで保護してください。
type Episode[S, A comparable] struct {
	root   *S
	values map[Policy[S, A]]float32
}

func NewEpisode[S, A comparable](root S) *Episode[S, A] {
	return &Episode[S, A]{
		root:   &root,
		values: map[Policy[S, A]]float32{},
	}
}

// NewEmptyEpisode creates an episode without a root. It becomes fully usable
// once SetRoot establishes one. The zero value behaves the same way.
func NewEmptyEpisode[S, A comparable]() *Episode[S, A] {
	return &Episode[S, A]{values: map[Policy[S, A]]float32{}}
}

// SetRoot establishes the root state. The root can be set exactly once and
// is immutable thereafter.
func (e *Episode[S, A]) SetRoot(root S) error {
	if e.root != nil {
		return ErrRootAlreadySet
	}
	e.root = &root
	return nil
}

func (e *Episode[S, A]) Root() (S, error) {
	if e.root == nil {
		var zero S
		return zero, ErrNoRoot
	}
	return *e.root, nil
}

// Update inserts the policy with the given value, or overwrites the stored
// value if the policy already exists. Duplicate keys are never created.
// Non-finite values are rejected so that every stored value is a finite
// real number.
//
// Updateは、Policyが未登録なら与えられた値で挿入し、登録済みなら値を
// 上書きします。キーが重複する事はありません。保持される値が常に有限で
// あるように、NaN/Infは拒否されます。
func (e *Episode[S, A]) Update(p Policy[S, A], v float32) error {
	if mathx.IsNaN(v) || mathx.IsInf(v, 0) {
		return fmt.Errorf("%w: v=%v", ErrNonFiniteValue, v)
	}
	if e.values == nil {
		e.values = map[Policy[S, A]]float32{}
	}
	e.values[p] = v
	return nil
}

// Value looks up the current value for a policy. A missing policy is a
// caller error and fails loudly with ErrPolicyNotFound; use ValueOrDefault
// for explicit defaulting.
func (e *Episode[S, A]) Value(p Policy[S, A]) (float32, error) {
	v, ok := e.values[p]
	if !ok {
		return 0.0, fmt.Errorf("%w: %v", ErrPolicyNotFound, p)
	}
	return v, nil
}

// ValueOrDefault returns the stored value for p, or def when p has never
// been updated. This is the documented default-on-missing alternative to
// Value.
func (e *Episode[S, A]) ValueOrDefault(p Policy[S, A], def float32) float32 {
	if v, ok := e.values[p]; ok {
		return v
	}
	return def
}

func (e *Episode[S, A]) Contains(p Policy[S, A]) bool {
	_, ok := e.values[p]
	return ok
}

func (e *Episode[S, A]) Len() int {
	return len(e.values)
}

// Equal reports whether two episodes have equal root states and equal
// policy→value mappings. Insertion order is irrelevant.
func (e *Episode[S, A]) Equal(other *Episode[S, A]) bool {
	if (e.root == nil) != (other.root == nil) {
		return false
	}
	if e.root != nil && *e.root != *other.root {
		return false
	}
	return maps.Equal(e.values, other.values)
}

// All returns a lazy, restartable iterator over all (policy, value) entries
// in the mapping's internal order. Mutating the episode during iteration
// follows Go's map range semantics.
//
// Allは、写像が持つ全ての(Policy, 値)エントリーを、内部順序で遅延的に
// 反復するイテレーターを返します。反復は何度でもやり直せます。
func (e *Episode[S, A]) All() iter.Seq2[Policy[S, A], float32] {
	return maps.All(e.values)
}

// Policies returns all policy keys. Order is unspecified.
func (e *Episode[S, A]) Policies() Policies[S, A] {
	ps := make(Policies[S, A], 0, len(e.values))
	for p := range e.values {
		ps = append(ps, p)
	}
	return ps
}

// Values returns all stored values. Order is unspecified.
func (e *Episode[S, A]) Values() []float32 {
	vs := make([]float32, 0, len(e.values))
	for _, v := range e.values {
		vs = append(vs, v)
	}
	return vs
}

// PoliciesFrom reconstructs, on demand, the outgoing policies of the given
// state by scanning the flat mapping. The episode stores no adjacency
// structure, so this costs O(Len()).
//
// PoliciesFromは、与えられた状態から出るPolicyを、写像の走査によって
// その場で再構成します。Episodeは隣接構造を保持しない為、計算量はO(Len())です。
func (e *Episode[S, A]) PoliciesFrom(state S) Policies[S, A] {
	ps := Policies[S, A]{}
	for p := range e.values {
		if p.State == state {
			ps = append(ps, p)
		}
	}
	return ps
}
