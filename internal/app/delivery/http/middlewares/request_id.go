package middlewares

import (
	"context"
	"net/http"
	"photodoc-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// RequestID takes the caller's X-Request-Id when present, otherwise mints
// one, and puts it on the request context and the response.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		w.Header().Set(constvars.HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
