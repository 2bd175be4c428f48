package api

import "encoding/json"

// Outcome is the decoded meaning of a backend status code. Every page
// folds responses through Classify and maps each variant to exactly
// one state transition, so the status contract lives in one place.
type Outcome interface{ outcome() }

// Success covers the 200/201/204 family. Body is kept raw; GET callers
// decode it, mutation callers may ignore it.
type Success struct {
	Status int
	Body   []byte
}

// Invalid is a 400 validation failure with the backend's error list.
type Invalid struct {
	Errors []string
}

// Unauthorized covers 401 and 403; the session is no longer usable.
type Unauthorized struct{}

// NotFound is a 404 for the addressed entity.
type NotFound struct{}

// ServerFailure is a 500 from the backend.
type ServerFailure struct{}

// Unknown is any status outside the contract; logged and ignored.
type Unknown struct {
	Status int
}

func (Success) outcome()       {}
func (Invalid) outcome()       {}
func (Unauthorized) outcome()  {}
func (NotFound) outcome()      {}
func (ServerFailure) outcome() {}
func (Unknown) outcome()       {}

// Classify maps a response onto the status contract the backend honors:
// 2xx success family, 400 {errors: [...]}, 401/403 auth, 404, 500.
func Classify(res Response) Outcome {
	switch res.Status {
	case 200, 201, 204:
		return Success{Status: res.Status, Body: res.Body}
	case 400:
		var payload struct {
			Errors []string `json:"errors"`
		}
		_ = json.Unmarshal(res.Body, &payload)
		return Invalid{Errors: payload.Errors}
	case 401, 403:
		return Unauthorized{}
	case 404:
		return NotFound{}
	case 500:
		return ServerFailure{}
	default:
		return Unknown{Status: res.Status}
	}
}

// Decode unmarshals a success body into v.
func (s Success) Decode(v any) error {
	return json.Unmarshal(s.Body, v)
}
