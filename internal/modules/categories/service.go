package categories

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

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

type savePayload struct {
	Title string   `json:"title"`
	Types []string `json:"types"`
}

// LoadPage fetches the category list and the available types in one
// orchestration: two sequential calls, a single terminal per call.
func (s *Service) LoadPage(ctx context.Context, st *state.Store[State], sess *session.Session) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/categories",
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var list []Category
		if err := out.Decode(&list); err != nil {
			return err
		}
		if _, err := st.DispatchAt(gen, ListLoaded{Categories: list}); err != nil {
			return err
		}
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
		s.logUnknown(ctx, "load_categories", out.Status)
		return nil
	}

	return s.loadTypes(ctx, st, sess, gen)
}

func (s *Service) loadTypes(ctx context.Context, st *state.Store[State], sess *session.Session, gen uint64) error {
	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/products/types",
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var types []string
		if err := out.Decode(&types); err != nil {
			return err
		}
		_, err := st.DispatchAt(gen, NewTypesLoaded(types))
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
		s.logUnknown(ctx, "load_category_types", out.Status)
	}
	return nil
}

// Load fetches one category into the form.
func (s *Service) Load(ctx context.Context, st *state.Store[State], sess *session.Session, categoryID string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/api/categories/" + categoryID,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		var c Category
		if err := out.Decode(&c); err != nil {
			return err
		}
		_, err := st.DispatchAt(gen, Loaded{Category: c})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Missing{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "load_category", out.Status)
		return nil
	}
	return nil
}

// Save creates or updates the category from current state. The guard
// short-circuits before any network call when the title is empty or no
// type is assigned; the save button's disabled state is the user
// feedback, the guard only covers programmatic bypass.
func (s *Service) Save(ctx context.Context, st *state.Store[State], sess *session.Session) error {
	cur := st.State()
	if strings.TrimSpace(cur.Title) == "" || len(cur.CategoryTypes) == 0 {
		return nil
	}

	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	method := http.MethodPost
	path := "/api/categories"
	if cur.CategoryID != "" {
		method = http.MethodPut
		path = "/api/categories/" + cur.CategoryID
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: method,
		Path:   path,
		Token:  sess.Token,
		JSON:   savePayload{Title: cur.Title, Types: cur.CategoryTypes},
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		saved := Saved{CategoryID: cur.CategoryID, Message: "Category has been saved."}
		var c Category
		if len(out.Body) > 0 && out.Decode(&c) == nil && c.ID != "" {
			saved.CategoryID = c.ID
		}
		_, err := st.DispatchAt(gen, saved)
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Missing{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "save_category", out.Status)
		return nil
	}
	return nil
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, st *state.Store[State], sess *session.Session, categoryID string) error {
	gen := st.Begin()
	if err := st.Dispatch(state.Loader{On: true}); err != nil {
		return err
	}

	res, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/api/categories/" + categoryID,
		Token:  sess.Token,
	})
	if err != nil {
		return err
	}

	switch out := api.Classify(res).(type) {
	case api.Success:
		_, err := st.DispatchAt(gen, Deleted{})
		return err
	case api.Invalid:
		_, err := st.DispatchAt(gen, state.SetErrorModalMessage{Errors: out.Errors})
		return err
	case api.Unauthorized:
		_, err := st.DispatchAt(gen, state.Unauthorized{})
		return err
	case api.NotFound:
		_, err := st.DispatchAt(gen, Deleted{})
		return err
	case api.ServerFailure:
		_, err := st.DispatchAt(gen, state.ServerFailure{})
		return err
	case api.Unknown:
		s.logUnknown(ctx, "delete_category", out.Status)
		return nil
	}
	return nil
}

func (s *Service) logUnknown(ctx context.Context, op string, status int) {
	s.log.DebugContext(ctx, "unhandled_status", slog.String("op", op), slog.Int("status", status))
}
