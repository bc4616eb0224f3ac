package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TextForge/internal/session"
	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the identity resolved by RequireSession.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RequestLogger logs every HTTP request with its status and duration.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter captures the status code written downstream.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SessionGate returns the RequireSession middleware bound to this handler's
// session store and codec.
func (h *Handler) SessionGate() func(next http.Handler) http.Handler {
	return RequireSession(h.sessions, h.codec, h.logger)
}

// RequireSession is the session gate. It verifies the signed session cookie,
// resolves it against the live store and attaches the owning user ID to the
// request context. Anything missing or invalid short-circuits with 401 and the
// wrapped handler never runs.
func RequireSession(store *session.Store, codec *session.TokenCodec, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				respondWithError(w, http.StatusUnauthorized, "Authentication required", logger)
				return
			}

			sessionID, err := codec.Decode(cookie.Value)
			if err != nil {
				logger.Warn("rejected session cookie", "error", err)
				respondWithError(w, http.StatusUnauthorized, "Authentication required", logger)
				return
			}

			userID, ok := store.Resolve(sessionID)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Authentication required", logger)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
