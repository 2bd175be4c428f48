package products

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
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
		require.Equal(t, "/api/products", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "mug", r.URL.Query().Get("search"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[{"id":"p1","name":"Mug"}],"totalPages":5}`))
	})

	st := state.NewStore(NewListState(), ReduceList)
	require.NoError(t, svc.LoadList(context.Background(), st, testSession(), 2, "mug"))

	got := st.State()
	require.Len(t, got.Products, 1)
	require.Equal(t, "Mug", got.Products[0].Name)
	require.Equal(t, 5, got.TotalPages)
	require.Equal(t, 2, got.PageNumber)
	require.False(t, got.IsLoading)
}

func TestLoadList_InvalidSurfacesErrorModal(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":["Page number is invalid."]}`))
	})

	st := state.NewStore(NewListState(), ReduceList)
	require.NoError(t, svc.LoadList(context.Background(), st, testSession(), 1, ""))

	got := st.State()
	require.Equal(t, []string{"Page number is invalid."}, got.ErrorsList)
	require.False(t, got.IsLoading)
}

func TestLoadList_UnauthorizedSetsFlag(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	st := state.NewStore(NewListState(), ReduceList)
	require.NoError(t, svc.LoadList(context.Background(), st, testSession(), 1, ""))
	require.True(t, st.State().IsUnauthorized)
}

func TestLoadList_UnknownStatusLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	st := state.NewStore(NewListState(), ReduceList)
	require.NoError(t, svc.LoadList(context.Background(), st, testSession(), 1, ""))

	got := st.State()
	require.True(t, got.IsLoading, "an unrecognized status dispatches no terminal")
	require.False(t, got.IsServerError)
	require.False(t, got.IsUnauthorized)
}

func TestLoadList_TransportFailureReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(api.NewClient(srv.URL, time.Second), log)

	st := state.NewStore(NewListState(), ReduceList)
	err := svc.LoadList(context.Background(), st, testSession(), 1, "")
	require.Error(t, err)
	require.True(t, st.State().IsLoading, "caller owns the failure path")
}

func TestDelete_NotFoundTreatedAsDeleted(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/products/p1", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	st := state.NewStore(NewListState(), ReduceList)
	require.NoError(t, svc.Delete(context.Background(), st, testSession(), "p1"))
	require.True(t, st.State().IsDeleted)
}

func TestSave_CreatePostsMultipart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/products", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Mug", r.FormValue("name"))
		require.Equal(t, "3", r.FormValue("quantity"))
		_, hdr, err := r.FormFile(SlotFirstImage)
		require.NoError(t, err)
		require.Equal(t, "mug.png", hdr.Filename)
		require.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p9","firstImage":"mug.png"}`))
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	values := FormValues{Name: "Mug", Type: "mug", Price: "9.99", Quantity: 3}
	uploads := []Upload{{Slot: SlotFirstImage, Filename: "mug.png", ContentType: "image/png", Data: strings.NewReader("png-bytes")}}

	require.NoError(t, svc.Save(context.Background(), st, testSession(), "", values, uploads))

	got := st.State()
	require.Equal(t, "p9", got.ProductID)
	require.Equal(t, "mug.png", got.SavedImages[SlotFirstImage])
	require.Equal(t, "Product has been saved.", got.ActiveModalText)
}

func TestSave_UpdateUsesPut(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/products/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	values := FormValues{Name: "Mug", Type: "mug", Price: "9.99"}

	require.NoError(t, svc.Save(context.Background(), st, testSession(), "p1", values, nil))
	require.Equal(t, "p1", st.State().ProductID)
}

func TestSave_RejectedKeepsFormResetsImages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":["Price must be positive."]}`))
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	seed := st.State()
	seed.SavedImages = map[string]string{SlotFirstImage: "old.png"}
	st = state.NewStore(seed, ReduceSave)

	values := FormValues{Name: "Mug", Type: "mug", Price: "-1"}
	require.NoError(t, svc.Save(context.Background(), st, testSession(), "p1", values, nil))

	got := st.State()
	require.Equal(t, []string{"Price must be positive."}, got.ErrorsList)
	require.Empty(t, got.SavedImages)
}

func TestDeleteImage_RejectsUnknownSlot(t *testing.T) {
	t.Parallel()

	called := false
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	err := svc.DeleteImage(context.Background(), st, testSession(), "p1", "fourthImage")
	require.Error(t, err)
	require.False(t, called, "no backend call for an unknown slot")
}

func TestDeleteImage_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/p1/images/"+SlotSecondImage, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	seed := NewSaveState()
	seed.SavedImages = map[string]string{SlotSecondImage: "b.png"}
	st := state.NewStore(seed, ReduceSave)

	require.NoError(t, svc.DeleteImage(context.Background(), st, testSession(), "p1", SlotSecondImage))
	require.Equal(t, "", st.State().SavedImages[SlotSecondImage])
}

func TestLoadTypes_DefaultsSelection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/types", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["mug","shirt","poster"]`))
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	require.NoError(t, svc.LoadTypes(context.Background(), st, testSession()))

	got := st.State()
	require.Equal(t, []string{"mug", "shirt", "poster"}, got.Types)
	require.Equal(t, "mug", got.FormValues.Type)
}

func TestLoad_NotFoundSetsFlag(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	st := state.NewStore(NewSaveState(), ReduceSave)
	require.NoError(t, svc.Load(context.Background(), st, testSession(), "missing"))
	require.True(t, st.State().IsNotFound)
}
