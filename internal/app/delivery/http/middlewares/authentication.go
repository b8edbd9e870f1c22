package middlewares

import (
	"context"
	"net/http"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/utils"
	"strings"
)

// Authenticate guards a route behind a Bearer access token. The resolved
// session lands on the request context; the raw token stays available to
// handlers that need it, e.g. logout.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		accessToken := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := m.AuthUsecase.CheckSession(r.Context(), accessToken)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the raw access token from the Authorization header.
func BearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get(constvars.HeaderAuthorization), "Bearer ")
}
