// Package auth содержит сессию пользователя и проверку bearer-токенов.
package auth

import (
	"context"
	"sync"

	"github.com/augcode13-glitch/paapimg/internal/domain"
)

// ChangeFunc вызывается при входе (user != nil) и выходе (user == nil)
type ChangeFunc func(ctx context.Context, user *domain.User)

// Session хранит пользователя, привязанного к одной сессии просмотра,
// и уведомляет подписчиков о входе и выходе.
type Session struct {
	mu          sync.Mutex
	user        *domain.User
	nextID      int
	subscribers map[int]ChangeFunc
}

func NewSession() *Session {
	return &Session{subscribers: make(map[int]ChangeFunc)}
}

// CurrentUser возвращает текущего пользователя или nil
func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe регистрирует обработчик изменений; возвращает функцию отписки
func (s *Session) Subscribe(fn ChangeFunc) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SignIn привязывает пользователя к сессии. Подписчики уведомляются,
// только если пользователь сменился. Возвращает true при смене.
func (s *Session) SignIn(ctx context.Context, user domain.User) bool {
	s.mu.Lock()
	if s.user != nil && s.user.ID == user.ID {
		s.mu.Unlock()
		return false
	}
	u := user
	s.user = &u
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(ctx, subs, &u)
	return true
}

// SignOut отвязывает пользователя. Повторный выход ничего не делает.
func (s *Session) SignOut(ctx context.Context) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}
	s.user = nil
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(ctx, subs, nil)
	return true
}

func (s *Session) snapshotLocked() []ChangeFunc {
	subs := make([]ChangeFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// обработчики вызываются вне блокировки: они ходят в хранилище
func notify(ctx context.Context, subs []ChangeFunc, user *domain.User) {
	for _, fn := range subs {
		var u *domain.User
		if user != nil {
			cp := *user
			u = &cp
		}
		fn(ctx, u)
	}
}
