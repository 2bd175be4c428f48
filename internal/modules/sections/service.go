package sections

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type Service struct {
	api *api.Client
	log *slog.Logger
}

func NewService(client *api.Client, log *slog.Logger) *Service {
	return &Service{api: client, log: log}
}

// SectionInput is the editable section payload.
type SectionInput struct {
	Title   string `json:"title" form:"title" binding:"required,max=100"`
	Content string `json:"content" form:"content" binding:"required,max=5000"`
}

// LoadList fetches all sections.
func (s *Service) LoadList(ctx context.Context, st *state.Store[State], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/sections",
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	return s.terminal(ctx, st, gen, "load_sections", res, func(out api.Success) (state.Action, error) {
		var list []Section
		if err := out.Decode(&list); err != nil {
			return nil, err
		}
		return ListLoaded{Sections: list}, nil
	})
}

// Save creates (empty id) or updates one section.
func (s *Service) Save(ctx context.Context, st *state.Store[State], sess *session.Session, sectionID string, in SectionInput) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	method := http.MethodPost
	path := "/api/sections"
	if sectionID != "" {
		method = http.MethodPut
		path = "/api/sections/" + sectionID
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: method,
		Path:   path,
		Token:  sess.Token,
		JSON:   in,
	})
	if err != nil {
		return err
	}

	return s.terminal(ctx, st, gen, "save_section", res, func(api.Success) (state.Action, error) {
		return Saved{Message: "Section has been saved."}, nil
	})
}

// Delete removes one section.
func (s *Service) Delete(ctx context.Context, st *state.Store[State], sess *session.Session, sectionID string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/api/sections/" + sectionID,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	return s.terminal(ctx, st, gen, "delete_section", res, func(api.Success) (state.Action, error) {
		return Deleted{}, nil
	})
}

// terminal maps the classified outcome onto exactly one dispatch.
// Sections have no entity detail page, so 404 falls into the server
// failure branch like any other broken route.
func (s *Service) terminal(ctx context.Context, st *state.Store[State], gen uint64, op string, res api.Response, onSuccess func(api.Success) (state.Action, error)) error {
	switch out := api.Classify(res).(type) {
	case api.Success:
		act, err := onSuccess(out)
		if err != nil {
			return err
		}
		_, err = st.DispatchAt(gen, act)
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.log.DebugContext(ctx, "unhandled_status", slog.String("op", op), slog.Int("status", out.Status))
		return nil
	}
	return nil
}
