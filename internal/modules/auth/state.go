// Package auth drives the login page: credentials go to the shop
// backend, a returned token becomes the admin session.
package auth

import "github.com/tHeather/shop-frontend-cms-sub000/internal/state"

type State struct {
	state.Page
	Email string `json:"email"`
	// FailedMessage is the page-level "wrong credentials" line; it is
	// not a field error, so it lives outside ErrorsList.
	FailedMessage string `json:"failedMessage,omitempty"`
}

func NewState() State { return State{} }

// LoggedIn is dispatched on a 200 login response.
type LoggedIn struct {
	state.ActionBase
	Email string
}

// LoginFailed is dispatched on 401/403: on this page it means wrong
// credentials, not an expired session.
type LoginFailed struct{ state.ActionBase }

func Reduce(s State, act state.Action) (State, error) {
	switch a := act.(type) {
	case LoggedIn:
		s.Email = a.Email
		s.FailedMessage = ""
		s.IsLoading = false
		return s, nil
	case LoginFailed:
		s.FailedMessage = "E-mail or password is incorrect."
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
