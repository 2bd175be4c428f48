package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/modules/auth"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
)

type AuthHandler struct {
	svc      *auth.Service
	sessions middleware.SessionCfg
	ttl      time.Duration
}

func NewAuthHandler(svc *auth.Service, sessions middleware.SessionCfg, ttl time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, ttl: ttl}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		bindFailed(c, err, &creds)
		return
	}

	st := state.NewStore(auth.NewState(), auth.Reduce)
	token, err := h.svc.Login(c.Request.Context(), st, creds)
	if err != nil {
		middleware.Fail(c, apperr.UpstreamErr(err))
		return
	}

	if token != "" {
		sess, err := h.sessions.Store.Create(c.Request.Context(), token, creds.Email)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		middleware.SetSessionCookie(c, h.sessions, sess.ID, int(h.ttl.Seconds()))
	}

	respondPage(c, h.sessions, st.State(), st.State().Page)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Store.Delete(c.Request.Context(), sess.ID); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}
	middleware.ClearSessionCookie(c, h.sessions)
	c.Status(http.StatusNoContent)
}
