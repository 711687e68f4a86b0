package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores the request correlation ID on the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}

// GetCorrelationID returns the correlation ID on the context, or "" when
// the context carries none.
func GetCorrelationID(ctx context.Context) string {
	if cid, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return cid
	}

	return ""
}
