package heron

import (
	"github.com/sw965/omw/encoding/gobx"
	"github.com/sw965/omw/encoding/jsonx"
)

// PolicyValue is one flattened (policy, value) entry of an episode.
type PolicyValue[S, A comparable] struct {
	State  S
	Action A
	Value  float32
}

// Snapshot is the serializable form of an Episode. Entries carry the
// mapping in an unspecified order; a nil Root means the episode was
// rootless.
type Snapshot[S, A comparable] struct {
	Root    *S
	Entries []PolicyValue[S, A]
}

func (e *Episode[S, A]) Snapshot() Snapshot[S, A] {
	snap := Snapshot[S, A]{
		Entries: make([]PolicyValue[S, A], 0, len(e.values)),
	}
	if e.root != nil {
		root := *e.root
		snap.Root = &root
	}
	for p, v := range e.values {
		snap.Entries = append(snap.Entries, PolicyValue[S, A]{
			State:  p.State,
			Action: p.Action,
			Value:  v,
		})
	}
	return snap
}

// FromSnapshot rebuilds an episode that compares Equal to the one the
// snapshot was taken from.
func FromSnapshot[S, A comparable](snap Snapshot[S, A]) (*Episode[S, A], error) {
	e := NewEmptyEpisode[S, A]()
	if snap.Root != nil {
		if err := e.SetRoot(*snap.Root); err != nil {
			return nil, err
		}
	}
	for _, entry := range snap.Entries {
		if err := e.Update(NewPolicy(entry.State, entry.Action), entry.Value); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Episode[S, A]) SaveJSON(path string) error {
	snap := e.Snapshot()
	return jsonx.Save(snap, path)
}

func LoadJSON[S, A comparable](path string) (*Episode[S, A], error) {
	snap, err := jsonx.Load[Snapshot[S, A]](path)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

func (e *Episode[S, A]) SaveGob(path string) error {
	snap := e.Snapshot()
	return gobx.Save(snap, path)
}

func LoadGob[S, A comparable](path string) (*Episode[S, A], error) {
	snap, err := gobx.Load[Snapshot[S, A]](path)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}
