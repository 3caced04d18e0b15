package api

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const principalKey contextKey = "principal"

// principalID returns the authenticated user ID set by requireAuth
func principalID(r *http.Request) string {
	id, _ := r.Context().Value(principalKey).(string)
	return id
}

// requireAuth resolves the bearer token to an existing user and stores the
// principal on the request context. Missing, invalid and unknown-user
// tokens are all rejected the same way.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)

		if token == "" {
			s.respondWithError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		user, err := s.authService.ResolvePrincipal(r.Context(), token)

		if err != nil {
			s.respondWithServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}

	return ""
}

// loggingMiddleware logs every processed request
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info("Request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"remoteAddr", r.RemoteAddr,
		)
	})
}
