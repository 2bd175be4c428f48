package categories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

func TestReduce_AddThenRemoveTypeRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewState()

	s, err := Reduce(s, TypeAdded{Type: "mug"})
	require.NoError(t, err)
	s, err = Reduce(s, TypeAdded{Type: "shirt"})
	require.NoError(t, err)
	require.Equal(t, []string{"mug", "shirt"}, s.CategoryTypes)

	s, err = Reduce(s, TypeRemoved{Type: "mug"})
	require.NoError(t, err)
	require.Equal(t, []string{"shirt"}, s.CategoryTypes)

	s, err = Reduce(s, TypeRemoved{Type: "shirt"})
	require.NoError(t, err)
	require.Empty(t, s.CategoryTypes)
}

func TestReduce_TypeAddedIgnoresDuplicates(t *testing.T) {
	t.Parallel()

	s := NewState()
	s, err := Reduce(s, TypeAdded{Type: "mug"})
	require.NoError(t, err)
	s, err = Reduce(s, TypeAdded{Type: "mug"})
	require.NoError(t, err)
	require.Equal(t, []string{"mug"}, s.CategoryTypes)
}

func TestReduce_TypeOperationsCopyNotAlias(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.CategoryTypes = []string{"mug"}
	before := s

	added, err := Reduce(s, TypeAdded{Type: "shirt"})
	require.NoError(t, err)
	require.Equal(t, []string{"mug"}, before.CategoryTypes)
	require.Equal(t, []string{"mug", "shirt"}, added.CategoryTypes)

	removed, err := Reduce(added, TypeRemoved{Type: "mug"})
	require.NoError(t, err)
	require.Equal(t, []string{"mug", "shirt"}, added.CategoryTypes)
	require.Equal(t, []string{"shirt"}, removed.CategoryTypes)
}

func TestReduce_LoadedFillsForm(t *testing.T) {
	t.Parallel()

	s, err := Reduce(NewState(), Loaded{Category: Category{
		ID: "c1", Title: "Drinkware", Types: []string{"mug"},
	}})
	require.NoError(t, err)

	require.Equal(t, "c1", s.CategoryID)
	require.Equal(t, "Drinkware", s.Title)
	require.Equal(t, []string{"mug"}, s.CategoryTypes)
	require.False(t, s.IsLoading)
}

func TestReduce_DeletedClearsForm(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.CategoryID = "c1"
	s.Title = "Drinkware"
	s.CategoryTypes = []string{"mug"}

	s, err := Reduce(s, Deleted{})
	require.NoError(t, err)
	require.Empty(t, s.CategoryID)
	require.Empty(t, s.Title)
	require.Empty(t, s.CategoryTypes)
}

func TestReduce_UnknownActionErrors(t *testing.T) {
	t.Parallel()

	type foreign struct{ state.ActionBase }

	_, err := Reduce(NewState(), foreign{})
	require.ErrorIs(t, err, state.ErrUnhandled)
}
