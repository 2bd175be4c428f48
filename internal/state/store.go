package state

import "sync"

// Reducer is a pure transition function. Implementations must not
// mutate the incoming state or any nested container in place.
type Reducer[S any] func(S, Action) (S, error)

// Store owns one page's state. Dispatches are serialized; a generation
// counter lets an orchestration detect that a newer one started while
// its request was in flight and discard the stale terminal dispatch
// instead of overwriting fresher state.
type Store[S any] struct {
	mu     sync.Mutex
	state  S
	reduce Reducer[S]
	gen    uint64
}

func NewStore[S any](initial S, reduce Reducer[S]) *Store[S] {
	return &Store[S]{state: initial, reduce: reduce}
}

func (st *Store[S]) State() S {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Begin starts a new generation, invalidating any in-flight one.
func (st *Store[S]) Begin() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	return st.gen
}

// Dispatch applies actions regardless of generation.
func (st *Store[S]) Dispatch(acts ...Action) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.apply(acts)
}

// DispatchAt applies actions only if gen is still current. Returns
// false when the dispatch was discarded as stale.
func (st *Store[S]) DispatchAt(gen uint64, acts ...Action) (bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if gen != st.gen {
		return false, nil
	}
	return true, st.apply(acts)
}

func (st *Store[S]) apply(acts []Action) error {
	next := st.state
	for _, a := range acts {
		var err error
		next, err = st.reduce(next, a)
		if err != nil {
			return err
		}
	}
	st.state = next
	return nil
}
