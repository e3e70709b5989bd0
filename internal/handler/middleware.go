package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/google/uuid"
)

// SessionHeader передаёт id сессии просмотра в обе стороны
const SessionHeader = "X-Session-ID"

type entryKey struct{}

// EntryFromContext возвращает сессию просмотра, положенную SessionMiddleware
func EntryFromContext(ctx context.Context) *feed.Entry {
	entry, _ := ctx.Value(entryKey{}).(*feed.Entry)
	return entry
}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"session_id", w.Header().Get(SessionHeader),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SessionMiddleware находит сессию просмотра по X-Session-ID или выдаёт новую.
// Id всегда возвращается в заголовке ответа.
func SessionMiddleware(registry *feed.Registry, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(SessionHeader))
			if err != nil {
				id = uuid.New()
			}

			entry, created := registry.Get(id)
			if created {
				logger.Debug("issued browsing session", "session_id", id.String())
			}

			w.Header().Set(SessionHeader, id.String())
			ctx := context.WithValue(r.Context(), entryKey{}, entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware проверяет необязательный Bearer-токен и привязывает
// пользователя к сессии просмотра. Без заголовка сессия считается анонимной.
// verifier может быть nil, если JWT_SECRET не задан: тогда токены отклоняются.
func AuthMiddleware(verifier *auth.Verifier, users ports.UserStorage, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			entry := EntryFromContext(ctx)
			if entry == nil {
				respondWithError(w, http.StatusInternalServerError, "session is not initialized", logger)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				entry.Session.SignOut(ctx)
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "authorization header must be a Bearer token", logger)
				return
			}
			if verifier == nil {
				respondWithError(w, http.StatusUnauthorized, "authentication is not configured", logger)
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("rejected bearer token", "error", err)
				respondWithError(w, http.StatusUnauthorized, "invalid token", logger)
				return
			}

			if current := entry.Session.CurrentUser(); current == nil || current.ID != user.ID {
				if err := upsertUser(ctx, users, user); err != nil {
					logger.Error("failed to upsert user", "user_id", user.ID, "error", err)
					respondWithError(w, http.StatusInternalServerError, "failed to sign in", logger)
					return
				}
				entry.Session.SignIn(ctx, user)
				logger.Info("user signed in", "user_id", user.ID, "session_id", entry.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(ctx, user)))
		})
	}
}

func upsertUser(ctx context.Context, users ports.UserStorage, user domain.User) error {
	if users == nil {
		return nil
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	return users.UpsertUser(ctx, user)
}
