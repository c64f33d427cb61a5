package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID in both directions.
const Header = "X-Request-ID"

// maxLen bounds client-supplied IDs; a UUID is 36 characters.
const maxLen = 64

type ctxKey struct{}

// Resolve returns incoming when it is a usable ID and a fresh UUID v4
// otherwise. Usable IDs are non-empty, at most 64 bytes, and contain only
// ASCII letters, digits, '-', '_' and '.', so they are safe to log and echo.
func Resolve(incoming string) string {
	if valid(incoming) {
		return incoming
	}
	return uuid.NewString()
}

func valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
