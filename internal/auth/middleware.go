package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

var identityKey contextKey

// ContextWithIdentity attaches the identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// Middleware resolves the bearer token, if any, and stores the identity in
// the request context. Requests without a token, or with a token the provider
// rejects, continue anonymously: the billing core is usable stand-alone.
type Middleware struct {
	Verifier Verifier
	Logger   *slog.Logger
}

// Handler is the chi-compatible middleware function.
func (m Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := m.Verifier.Verify(r.Context(), token)
		if err != nil {
			m.Logger.Warn("identity verification failed", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
