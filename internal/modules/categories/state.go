// Package categories drives the save-category admin page: a category
// is a title plus the set of product types assigned to it.
package categories

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

type Category struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Types []string `json:"types"`
}

type State struct {
	state.Page
	CategoryID string `json:"categoryId,omitempty"`
	Title      string `json:"title"`
	// CategoryTypes is set-valued: add and remove both copy, never
	// alias, so snapshots taken before a transition stay intact.
	CategoryTypes []string   `json:"categoryTypes"`
	Types         []string   `json:"types"`
	SelectedType  string     `json:"selectedType"`
	Categories    []Category `json:"categories"`
	IsNotFound    bool       `json:"isNotFound,omitempty"`
}

func NewState() State { return State{} }

// TypesLoaded mirrors the product page's creator: types[0] becomes the
// initially selected type.
type TypesLoaded struct {
	state.ActionBase
	Types    []string
	Selected string
}

func NewTypesLoaded(types []string) TypesLoaded {
	selected := ""
	if len(types) > 0 {
		selected = types[0]
	}
	return TypesLoaded{Types: types, Selected: selected}
}

type ListLoaded struct {
	state.ActionBase
	Categories []Category
}

type Loaded struct {
	state.ActionBase
	Category Category
}

type TypeAdded struct {
	state.ActionBase
	Type string
}

type TypeRemoved struct {
	state.ActionBase
	Type string
}

type Saved struct {
	state.ActionBase
	CategoryID string
	Message    string
}

type Deleted struct{ state.ActionBase }

type Missing struct{ state.ActionBase }

func Reduce(s State, act state.Action) (State, error) {
	switch a := act.(type) {
	case TypesLoaded:
		s.Types = append([]string(nil), a.Types...)
		if s.SelectedType == "" {
			s.SelectedType = a.Selected
		}
		s.IsLoading = false
		return s, nil
	case ListLoaded:
		s.Categories = append([]Category(nil), a.Categories...)
		s.IsLoading = false
		return s, nil
	case Loaded:
		s.CategoryID = a.Category.ID
		s.Title = a.Category.Title
		s.CategoryTypes = append([]string(nil), a.Category.Types...)
		s.IsNotFound = false
		s.IsLoading = false
		return s, nil
	case TypeAdded:
		if contains(s.CategoryTypes, a.Type) {
			return s, nil
		}
		s.CategoryTypes = append(append([]string(nil), s.CategoryTypes...), a.Type)
		return s, nil
	case TypeRemoved:
		next := make([]string, 0, len(s.CategoryTypes))
		for _, t := range s.CategoryTypes {
			if t != a.Type {
				next = append(next, t)
			}
		}
		s.CategoryTypes = next
		return s, nil
	case Saved:
		s.CategoryID = a.CategoryID
		s.ActiveModalText = a.Message
		s.IsLoading = false
		return s, nil
	case Deleted:
		s.CategoryID = ""
		s.Title = ""
		s.CategoryTypes = nil
		s.IsLoading = false
		return s, nil
	case Missing:
		s.IsNotFound = true
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

func contains(list []string, v string) bool {
	for _, t := range list {
		if t == v {
			return true
		}
	}
	return false
}
