package api

import "context"

type ridKey struct{}

// WithRequestID stores the inbound request id so backend calls carry
// it in X-Request-ID.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey{}, rid)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(ridKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
