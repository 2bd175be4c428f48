package sections

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(api.NewClient(srv.URL, 5*time.Second), log)
}

func testSession() *session.Session {
	return &session.Session{ID: "s1", Token: "tok", Email: "admin@shop.test"}
}

func TestLoadList_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sections", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"s1","title":"About us","content":"Hello."}]`))
	})

	st := state.NewStore(NewState(), Reduce)
	require.NoError(t, svc.LoadList(context.Background(), st, testSession()))

	got := st.State()
	require.Len(t, got.Sections, 1)
	require.Equal(t, "About us", got.Sections[0].Title)
	require.False(t, got.IsLoading)
}

func TestSave_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	var method, path string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		var in SectionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "About us", in.Title)
		w.WriteHeader(http.StatusNoContent)
	})

	st := state.NewStore(NewState(), Reduce)
	in := SectionInput{Title: "About us", Content: "Hello."}

	require.NoError(t, svc.Save(context.Background(), st, testSession(), "", in))
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/api/sections", path)
	require.Equal(t, "Section has been saved.", st.State().ActiveModalText)

	require.NoError(t, svc.Save(context.Background(), st, testSession(), "s1", in))
	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/api/sections/s1", path)
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/sections/s1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	st := state.NewStore(NewState(), Reduce)
	require.NoError(t, svc.Delete(context.Background(), st, testSession(), "s1"))
	require.Equal(t, "Section has been deleted.", st.State().ActiveModalText)
}

func TestSave_NotFoundIsServerFailure(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	st := state.NewStore(NewState(), Reduce)
	in := SectionInput{Title: "About us", Content: "Hello."}
	require.NoError(t, svc.Save(context.Background(), st, testSession(), "gone", in))
	require.True(t, st.State().IsServerError, "no detail page means 404 has no dedicated state")
}

func TestReduce_UnknownActionErrors(t *testing.T) {
	t.Parallel()

	type foreign struct{ state.ActionBase }

	_, err := Reduce(NewState(), foreign{})
	require.ErrorIs(t, err, state.ErrUnhandled)
}
