package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type Service struct {
	api *api.Client
	log *slog.Logger
}

func NewService(client *api.Client, log *slog.Logger) *Service {
	return &Service{api: client, log: log}
}

type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login posts credentials to the backend. On success it returns the
// bearer token for the caller to persist into a session; otherwise
// the returned token is empty and the page state carries the outcome.
func (s *Service) Login(ctx context.Context, st *state.Store[State], creds Credentials) (string, error) {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return "", err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/api/login",
		JSON:   creds,
	})
	if err != nil {
		return "", err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var body loginResponse
		if err := out.Decode(&body); err != nil {
			return "", err
		}
		if _, err := st.DispatchAt(gen, LoggedIn{Email: creds.Email}); err != nil {
			return "", err
		}
		return body.Token, nil
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return "", err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, LoginFailed{})
		return "", err
	case api.NotFound:
		// The login endpoint itself is part of the contract; a 404
		// here is an upstream misconfiguration.
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return "", err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return "", err
	case api.Unknown:
		s.log.DebugContext(ctx, "unhandled_status", slog.String("op", "login"), slog.Int("status", out.Status))
		return "", nil
	}
	return "", nil
}
