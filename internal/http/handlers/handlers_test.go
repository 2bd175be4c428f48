package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/auth"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/products"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
)

const testCookie = "cms_session"

type env struct {
	router   *gin.Engine
	sessions *session.Memory
}

// newEnv wires the session middleware and the auth/products routes
// against a fake shop backend.
func newEnv(t *testing.T, backend http.HandlerFunc) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(srv.URL, 5*time.Second)
	sessions := session.NewMemory(time.Hour)
	sessCfg := middleware.SessionCfg{Store: sessions, CookieName: testCookie}

	authH := NewAuthHandler(auth.NewService(client, log), sessCfg, time.Hour)
	productsH := NewProductsHandler(products.NewService(client, log), sessCfg, nil)

	r := gin.New()
	r.Use(middleware.ErrorHandler(log), middleware.Session(sessCfg, log))
	r.POST("/api/admin/login", authH.Login)
	admin := r.Group("/api/admin", middleware.RequireAuth())
	admin.POST("/logout", authH.Logout)
	admin.GET("/products", productsH.List)
	admin.POST("/products", productsH.Create)
	admin.DELETE("/products/:id", productsH.Delete)

	return &env{router: r, sessions: sessions}
}

func (e *env) authed(t *testing.T) *session.Session {
	t.Helper()
	sess, err := e.sessions.Create(context.Background(), "tok", "admin@shop.test")
	require.NoError(t, err)
	return sess
}

func doRequest(e *env, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func clearedCookie(res *http.Response) bool {
	for _, c := range res.Cookies() {
		if c.Name == testCookie && c.Value == "" && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestRequireAuth_AnonymousGets401(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	w := doRequest(e, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "/", body["redirect"])
}

func TestDelete_Backend401ClearsSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	sess := e.authed(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/p1", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
	w := doRequest(e, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "/", body["redirect"])

	require.True(t, clearedCookie(w.Result()), "session cookie must be expired")

	got, err := e.sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Nil(t, got, "session row must be deleted")
}

func TestDelete_Backend500RedirectsTo500(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sess := e.authed(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/p1", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
	w := doRequest(e, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "/500", body["redirect"])

	got, err := e.sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "a 500 is not an auth problem")
}

func TestList_SuccessReturnsPageState(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[{"id":"p1","name":"Mug"}],"totalPages":5}`))
	})
	sess := e.authed(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products?page=1", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
	w := doRequest(e, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State products.ListState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.State.Products, 1)
	require.Equal(t, 5, body.State.TotalPages)
}

func TestList_ForwardsRequestedPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"requested_page_passes", "page=3&currentPage=2&totalPages=5", "3"},
		{"over_total_clamped", "page=10&currentPage=2&totalPages=5", "5"},
		{"non_numeric_falls_back_to_current", "page=abc&currentPage=2&totalPages=5", "2"},
		{"missing_bounds_default_to_first", "page=7", "1"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotPage string
			e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
				gotPage = r.URL.Query().Get("page")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"result":[],"totalPages":5}`))
			})
			sess := e.authed(t)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/products?"+tc.query, nil)
			req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
			w := doRequest(e, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.want, gotPage)
		})
	}
}

func TestCreateProduct_Backend400KeepsFormValues(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":["Price must be positive."]}`))
	})
	sess := e.authed(t)

	form := url.Values{}
	form.Set("name", "Mug")
	form.Set("type", "mug")
	form.Set("price", "-1")
	form.Set("quantity", "3")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
	w := doRequest(e, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State products.SaveState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, []string{"Price must be positive."}, body.State.ErrorsList)
	require.Equal(t, "Mug", body.State.FormValues.Name, "submitted values survive a backend 400")
	require.Equal(t, "-1", body.State.FormValues.Price)
	require.Empty(t, body.State.SavedImages, "image fields reset: files cannot be round-tripped")
}

func TestLogin_SuccessSetsCookie(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"jwt-abc"}`))
	})

	body := `{"email":"admin@shop.test","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(e, req)

	require.Equal(t, http.StatusOK, w.Code)

	var id string
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie && c.Value != "" {
			id = c.Value
		}
	}
	require.NotEmpty(t, id, "login must set the session cookie")

	sess, err := e.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "jwt-abc", sess.Token)
	require.Equal(t, "admin@shop.test", sess.Email)
}

func TestLogin_InvalidFormIsLocal400(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not reach the backend")
	})

	body := `{"email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(e, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		ErrorsList []string          `json:"errorsList"`
		Fields     map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ErrorsList)
	require.Contains(t, resp.Fields, "email")
	require.Contains(t, resp.Fields, "password")
}

func TestLogout_DeletesSessionAndCookie(t *testing.T) {
	t.Parallel()

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	sess := e.authed(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.ID})
	w := doRequest(e, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, clearedCookie(w.Result()))

	got, err := e.sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
