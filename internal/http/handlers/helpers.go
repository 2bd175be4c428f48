package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/middleware"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/validation"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/state"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/storage"
)

// respondPage maps a finished page state onto the HTTP contract the
// admin SPA consumes: 401 + cleared session when the backend rejected
// the token, a /500 redirect on upstream failure, otherwise the state.
func respondPage[S any](c *gin.Context, cfg middleware.SessionCfg, s S, page state.Page) {
	switch {
	case page.IsUnauthorized:
		if sess := middleware.CurrentSession(c); sess != nil {
			_ = cfg.Store.Delete(c.Request.Context(), sess.ID)
		}
		middleware.ClearSessionCookie(c, cfg)
		c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/", "state": s})
	case page.IsServerError:
		c.JSON(http.StatusBadGateway, gin.H{"redirect": "/500", "state": s})
	default:
		c.JSON(http.StatusOK, gin.H{"state": s})
	}
}

// bindFailed surfaces local form-validation errors through the error
// handler in the same shape as backend 400 errors, without touching
// page state.
func bindFailed(c *gin.Context, err error, dst any) {
	errs := validation.FromBindError(err, dst)
	middleware.Fail(c, apperr.InvalidErr("Form data is invalid.", errs))
}

// uploadErr maps staging failures onto the form-error contract; only
// genuine I/O problems stay internal.
func uploadErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return apperr.InvalidErr("Images must be png, jpg, webp or gif.", nil)
	case errors.Is(err, storage.ErrTooLarge):
		return apperr.InvalidErr("Image is too large.", nil)
	default:
		return apperr.Wrap(err)
	}
}
