package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
	"github.com/google/uuid"
)

// Pinger проверяет доступность БД для /healthz
type Pinger interface {
	PingContext(ctx context.Context) error
}

// FeedHandler — обработчик HTTP-запросов ленты, избранного и кэша.
type FeedHandler struct {
	refill    usecase.RefillUseCase
	publisher ports.RefillPublisher
	db        Pinger
	logger    *slog.Logger
}

// NewFeedHandler создаёт новый экземпляр FeedHandler.
// publisher может быть nil: тогда асинхронное пополнение недоступно.
func NewFeedHandler(
	refill usecase.RefillUseCase,
	publisher ports.RefillPublisher,
	db Pinger,
	logger *slog.Logger,
) *FeedHandler {
	return &FeedHandler{
		refill:    refill,
		publisher: publisher,
		db:        db,
		logger:    logger,
	}
}

type searchRequest struct {
	Term string `json:"term"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

type toggleRequest struct {
	Photo domain.Photo `json:"photo"`
}

type nextPageResponse struct {
	Started bool       `json:"started"`
	State   feed.State `json:"state"`
}

type favoritesResponse struct {
	Favorites []domain.Favorite `json:"favorites"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// GetFeed — возвращает состояние ленты; при первом обращении загружает первую страницу.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	entry := EntryFromContext(r.Context())
	entry.Controller.Mount(r.Context())
	respondWithJSON(w, http.StatusOK, entry.Controller.Snapshot(), h.logger)
}

// SetSearchTerm — заменяет поисковый запрос и перезагружает ленту.
func (h *FeedHandler) SetSearchTerm(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid search request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	entry := EntryFromContext(r.Context())
	h.logger.Info("search term changed", "session_id", entry.ID.String(), "term", req.Term)

	entry.Controller.SetSearchTerm(r.Context(), req.Term)
	respondWithJSON(w, http.StatusOK, entry.Controller.Snapshot(), h.logger)
}

// SetTab — переключает вкладку ленты.
func (h *FeedHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	tab, ok := feed.ParseTab(req.Tab)
	if !ok {
		h.logger.Warn("unknown tab", "tab", req.Tab)
		respondWithError(w, http.StatusBadRequest, "tab must be 'curated' or 'favorites'", h.logger)
		return
	}

	entry := EntryFromContext(r.Context())
	entry.Controller.SetTab(r.Context(), tab)
	respondWithJSON(w, http.StatusOK, entry.Controller.Snapshot(), h.logger)
}

// NextPage — подгружает следующую страницу. Повторные вызовы во время загрузки ничего не делают.
func (h *FeedHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	entry := EntryFromContext(r.Context())
	started := entry.Controller.RequestNextPage(r.Context())
	respondWithJSON(w, http.StatusOK, nextPageResponse{
		Started: started,
		State:   entry.Controller.Snapshot(),
	}, h.logger)
}

// ToggleFavorite — добавляет фото в избранное или убирает его.
func (h *FeedHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil || req.Photo.ID <= 0 {
		h.logger.Warn("invalid toggle request", "error", err)
		respondWithError(w, http.StatusBadRequest, "photo with a positive id is required", h.logger)
		return
	}

	entry := EntryFromContext(r.Context())
	res := entry.Controller.ToggleFavorite(r.Context(), req.Photo)

	code := http.StatusOK
	switch res.Status {
	case feed.ToggleSignInRequired:
		code = http.StatusUnauthorized
	case feed.ToggleFailed:
		code = http.StatusBadGateway
	}
	respondWithJSON(w, code, res, h.logger)
}

// ListFavorites — возвращает избранное вошедшего пользователя, новые первыми.
func (h *FeedHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		respondWithError(w, http.StatusUnauthorized, feed.SignInPrompt, h.logger)
		return
	}
	entry := EntryFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, favoritesResponse{Favorites: entry.Controller.Favorites()}, h.logger)
}

// RefillCache — пополняет кэш подборки. С ?async=true задача уходит в очередь.
func (h *FeedHandler) RefillCache(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("async") == "true" {
		h.enqueueRefill(w, r)
		return
	}

	start := time.Now()
	result, err := h.refill.Refill(r.Context(), usecase.RefillOptions{})
	if err != nil {
		h.logger.Error("cache refill failed",
			"run_id", result.RunID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		respondWithJSON(w, http.StatusInternalServerError, result, h.logger)
		return
	}

	h.logger.Info("cache refill completed",
		"run_id", result.RunID,
		"count", result.Count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	respondWithJSON(w, http.StatusOK, result, h.logger)
}

func (h *FeedHandler) enqueueRefill(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		respondWithError(w, http.StatusServiceUnavailable, "refill queue is not configured", h.logger)
		return
	}

	payload := payloads.RefillRequestPayload{
		RequestID:   uuid.NewString(),
		RequestedAt: time.Now().UTC(),
		Source:      "http",
	}
	if err := h.publisher.PublishRefillRequest(r.Context(), payload); err != nil {
		h.logger.Error("failed to publish refill request", "request_id", payload.RequestID, "error", err)
		respondWithError(w, http.StatusBadGateway, "failed to enqueue refill", h.logger)
		return
	}

	h.logger.Info("refill request enqueued", "request_id", payload.RequestID)
	respondWithJSON(w, http.StatusAccepted, map[string]string{"request_id": payload.RequestID}, h.logger)
}

// Healthz — проверка живости с пингом БД.
func (h *FeedHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("health check failed", "error", err)
			respondWithError(w, http.StatusServiceUnavailable, "database unavailable", h.logger)
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
