package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims — полезная нагрузка токена: sub содержит id пользователя
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// VerifierConfig задаёт секрет HS256 и ожидаемые iss/aud
type VerifierConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// Verifier проверяет bearer-токены и выпускает их (для тестов и CLI)
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: JWT secret is empty")
	}
	return &Verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Verify разбирает токен и возвращает пользователя.
// Любая ошибка проверки оборачивает apperr.ErrUnauthenticated.
func (v *Verifier) Verify(tokenString string) (domain.User, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return domain.User{}, fmt.Errorf("%w: empty token", apperr.ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.User{}, fmt.Errorf("%w: invalid claims", apperr.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: subject is not a uuid", apperr.ErrUnauthenticated)
	}

	return domain.User{ID: userID, Email: claims.Email}, nil
}

// Issue подписывает токен для пользователя
func (v *Verifier) Issue(user domain.User, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    v.issuer,
			Audience:  jwt.ClaimStrings{v.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}
