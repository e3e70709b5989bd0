// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет аутентифицированного пользователя.
// ID совпадает с subject из JWT, соответствует таблице 'users'.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
