package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
)

const ctxKeySession = "admin_session"

// SessionCfg configures the session middleware.
type SessionCfg struct {
	Store      session.Store
	CookieName string
	Secure     bool
}

// Session rehydrates the admin session from the cookie. An unknown or
// expired id clears the cookie and continues anonymously; expiry of
// the backend token itself only surfaces on the next 401.
func Session(cfg SessionCfg, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := cfg.Store.Get(c.Request.Context(), id)
		if err != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelError, "session_lookup_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
			c.Next()
			return
		}
		if sess == nil {
			ClearSessionCookie(c, cfg)
			c.Next()
			return
		}

		c.Set(ctxKeySession, sess)
		c.Next()
	}
}

// CurrentSession returns the authenticated session, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func SetSessionCookie(c *gin.Context, cfg SessionCfg, id string, maxAge int) {
	c.SetCookie(cfg.CookieName, id, maxAge, "/", "", cfg.Secure, true)
}

func ClearSessionCookie(c *gin.Context, cfg SessionCfg) {
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}

// RequireAuth gates the private admin routes: anonymous requests get
// 401 with the login route as the redirect target.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			Fail(c, apperr.UnauthorizedErr("authentication required"))
			return
		}
		c.Next()
	}
}
