// Package sections drives the home-page section admin page.
package sections

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type State struct {
	state.Page
	Sections []Section `json:"sections"`
}

func NewState() State { return State{} }

type ListLoaded struct {
	state.ActionBase
	Sections []Section
}

type Saved struct {
	state.ActionBase
	Message string
}

type Deleted struct{ state.ActionBase }

func Reduce(s State, act state.Action) (State, error) {
	switch a := act.(type) {
	case ListLoaded:
		s.Sections = append([]Section(nil), a.Sections...)
		s.IsLoading = false
		return s, nil
	case Saved:
		s.ActiveModalText = a.Message
		s.IsLoading = false
		return s, nil
	case Deleted:
		s.ActiveModalText = "Section has been deleted."
		s.IsLoading = false
		return s, nil
	default:
		p, ok := state.ApplyGlobal(s.Page, act)
		if !ok {
			return s, state.Unhandled(act)
		}
		s.Page = p
		return s, nil
	}
}
