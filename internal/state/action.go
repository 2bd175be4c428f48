// Package state holds the page-state machinery shared by every admin
// feature: the action vocabulary, the common page view state and a
// small store that folds actions through a pure reducer.
package state

import (
	"errors"
	"fmt"
)

// Action is a state transition request. The set of actions is closed:
// feature packages declare variants by embedding ActionBase, and a
// reducer that receives a variant outside its set must return
// ErrUnhandled instead of silently keeping the old state.
type Action interface{ action() }

// ActionBase is embedded by action variants in feature packages.
type ActionBase struct{}

func (ActionBase) action() {}

var ErrUnhandled = errors.New("unhandled action")

// Unhandled wraps ErrUnhandled with the concrete variant type.
func Unhandled(a Action) error {
	return fmt.Errorf("%w: %T", ErrUnhandled, a)
}

// Shared vocabulary reused by every feature reducer.

// Loader toggles the page loading flag.
type Loader struct {
	ActionBase
	On bool
}

// Unauthorized marks the session unusable; the HTTP layer reacts by
// clearing the session and sending the client back to the login view.
type Unauthorized struct{ ActionBase }

// ServerFailure marks an upstream 500; the client is sent to /500.
type ServerFailure struct{ ActionBase }

// SetModalMessage shows a success/confirmation modal.
type SetModalMessage struct {
	ActionBase
	Text string
}

type CloseModal struct{ ActionBase }

// SetErrorModalMessage surfaces a validation error list.
type SetErrorModalMessage struct {
	ActionBase
	Errors []string
}

type CloseErrorModal struct{ ActionBase }
