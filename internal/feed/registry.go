package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/metrics"
	"github.com/google/uuid"
)

// Entry — сессия просмотра: пользователь и контроллер ленты
type Entry struct {
	ID         uuid.UUID
	Session    *auth.Session
	Controller *Controller

	lastSeen time.Time
}

// Registry хранит контроллеры по id сессии просмотра и удаляет простаивающие
type Registry struct {
	sync.Mutex
	entries map[uuid.UUID]*Entry

	deps    Deps
	idleTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewRegistry принимает общие зависимости; Session в deps игнорируется,
// у каждой сессии просмотра она своя.
func NewRegistry(deps Deps, idleTTL time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[uuid.UUID]*Entry),
		deps:    deps,
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  logger,
	}
}

// Get возвращает сессию по id, создавая её при первом обращении
func (r *Registry) Get(id uuid.UUID) (entry *Entry, created bool) {
	r.Lock()
	defer r.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		return e, false
	}

	session := auth.NewSession()
	deps := r.deps
	deps.Session = session
	deps.Logger = r.logger.With("session_id", id.String())

	e := &Entry{
		ID:         id,
		Session:    session,
		Controller: NewController(deps),
		lastSeen:   r.now(),
	}
	r.entries[id] = e
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.logger.Debug("browsing session created", "session_id", id.String(), "count", len(r.entries))
	return e, true
}

// Len возвращает число живых сессий
func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.entries)
}

// Sweep удаляет сессии, простаивающие дольше idleTTL, и возвращает их число
func (r *Registry) Sweep() int {
	r.Lock()
	deadline := r.now().Add(-r.idleTTL)
	var expired []*Entry
	for id, e := range r.entries {
		if e.lastSeen.Before(deadline) {
			expired = append(expired, e)
			delete(r.entries, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.Unlock()

	for _, e := range expired {
		e.Controller.Close()
	}
	if len(expired) > 0 {
		r.logger.Info("expired idle browsing sessions", "count", len(expired))
	}
	return len(expired)
}

// Run периодически вызывает Sweep до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Shutdown закрывает все контроллеры
func (r *Registry) Shutdown() {
	r.Lock()
	defer r.Unlock()
	for id, e := range r.entries {
		e.Controller.Close()
		delete(r.entries, id)
	}
	metrics.ActiveSessions.Set(0)
}
