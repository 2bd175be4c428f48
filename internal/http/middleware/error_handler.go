package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/http/validation"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/shared/apperr"
)

// Fail records an error for the error handler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns collected errors into one JSON response. Every
// failure path goes through here so transport errors against the shop
// backend are surfaced instead of swallowed.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		payload := gin.H{
			"error":      publicMsg,
			"request_id": rid,
		}
		if ae, ok := apperr.As(err); ok {
			if len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
				payload["errorsList"] = validation.FieldErrors(ae.Fields).List()
			}
			if ae.Kind == apperr.Unauthorized {
				payload["redirect"] = "/"
			}
		}
		c.AbortWithStatusJSON(status, payload)
	}
}
