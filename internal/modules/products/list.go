// Package products drives the product list and save-product admin
// pages against the shop backend.
package products

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

// Product is the backend's list/detail representation.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	FirstImage  string `json:"firstImage"`
	SecondImage string `json:"secondImage"`
	ThirdImage  string `json:"thirdImage"`
}

type ListState struct {
	state.Page
	Products   []Product `json:"products"`
	PageNumber int       `json:"pageNumber"`
	TotalPages int       `json:"totalPages"`
	Search     string    `json:"search"`
	IsDeleted  bool      `json:"isDeleted,omitempty"`
}

func NewListState() ListState {
	return ListState{PageNumber: 1, TotalPages: 1}
}

// ListLoaded carries one decoded page of products.
type ListLoaded struct {
	state.ActionBase
	Products   []Product
	TotalPages int
	PageNumber int
	Search     string
}

// Deleted marks a successful product delete; the page refetches after
// the user dismisses the confirmation.
type Deleted struct{ state.ActionBase }

func ReduceList(s ListState, act state.Action) (ListState, error) {
	switch a := act.(type) {
	case ListLoaded:
		s.Products = append([]Product(nil), a.Products...)
		s.TotalPages = a.TotalPages
		s.PageNumber = a.PageNumber
		s.Search = a.Search
		s.IsDeleted = false
		s.IsLoading = false
		return s, nil
	case Deleted:
		s.IsDeleted = true
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
