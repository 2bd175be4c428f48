package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type counterState struct {
	Page
	N int
}

type increment struct{ ActionBase }

func reduceCounter(s counterState, act Action) (counterState, error) {
	switch act.(type) {
	case increment:
		s.N++
		return s, nil
	default:
		p, ok := ApplyGlobal(s.Page, act)
		if !ok {
			return s, Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}

func TestStore_DispatchAppliesInOrder(t *testing.T) {
	t.Parallel()

	st := NewStore(counterState{}, reduceCounter)
	require.NoError(t, st.Dispatch(Loader{On: true}, increment{}, increment{}))
	require.Equal(t, 2, st.State().N)
	require.True(t, st.State().IsLoading)
}

func TestStore_UnknownActionErrors(t *testing.T) {
	t.Parallel()

	st := NewStore(counterState{}, reduceCounter)
	err := st.Dispatch(fakeAction{})
	require.ErrorIs(t, err, ErrUnhandled)
	// Failed dispatch leaves state untouched.
	require.Equal(t, counterState{}, st.State())
}

func TestStore_FailedBatchIsAtomic(t *testing.T) {
	t.Parallel()

	st := NewStore(counterState{}, reduceCounter)
	err := st.Dispatch(increment{}, fakeAction{})
	require.ErrorIs(t, err, ErrUnhandled)
	require.Equal(t, 0, st.State().N)
}

func TestStore_StaleGenerationDiscarded(t *testing.T) {
	t.Parallel()

	st := NewStore(counterState{}, reduceCounter)

	first := st.Begin()
	second := st.Begin() // a newer orchestration started

	applied, err := st.DispatchAt(first, increment{})
	require.NoError(t, err)
	require.False(t, applied, "stale terminal dispatch must be discarded")
	require.Equal(t, 0, st.State().N)

	applied, err = st.DispatchAt(second, increment{})
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, 1, st.State().N)
}
