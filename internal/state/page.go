package state

// Page is the view state every feature page shares. Render precedence
// is fixed: not-found/server-error flags first, then the modal, then
// the loader, then the main form or list.
type Page struct {
	IsLoading       bool     `json:"isLoading"`
	ActiveModalText string   `json:"activeModalText,omitempty"`
	ErrorsList      []string `json:"errorsList,omitempty"`
	IsUnauthorized  bool     `json:"isUnauthorized,omitempty"`
	IsServerError   bool     `json:"isServerError,omitempty"`
}

// ApplyGlobal folds an action from the shared vocabulary into a copy
// of p. Feature reducers try their own variants first and fall back
// here, so every page gets these transitions without re-implementing
// them. Returns handled=false for actions outside the vocabulary.
func ApplyGlobal(p Page, act Action) (Page, bool) {
	switch a := act.(type) {
	case Loader:
		p.IsLoading = a.On
		return p, true
	case Unauthorized:
		// Loader intentionally stays set: the page is about to be
		// replaced by the login view.
		p.IsUnauthorized = true
		return p, true
	case ServerFailure:
		p.IsServerError = true
		return p, true
	case SetModalMessage:
		p.ActiveModalText = a.Text
		p.IsLoading = false
		return p, true
	case CloseModal:
		p.ActiveModalText = ""
		return p, true
	case SetErrorModalMessage:
		p.ErrorsList = append([]string(nil), a.Errors...)
		p.IsLoading = false
		return p, true
	case CloseErrorModal:
		p.ErrorsList = nil
		return p, true
	default:
		return p, false
	}
}
