// Package apperr содержит ошибки, по которым слои приложения принимают решения.
package apperr

import "errors"

var (
	// ErrSourceUnavailable — Pexels не сконфигурирован или запрос к нему не удался
	ErrSourceUnavailable = errors.New("photo source unavailable")
	// ErrUnauthenticated — операция требует вошедшего пользователя
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStoreRead       = errors.New("store read failure")
	ErrStoreWrite      = errors.New("store write failure")
	ErrNotFound        = errors.New("not found")
)
