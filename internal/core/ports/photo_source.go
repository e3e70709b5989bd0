package ports

import (
	"context"

	"github.com/augcode13-glitch/paapimg/internal/domain"
)

//go:generate mockgen -source=photo_source.go -destination=../../mocks/photo_source_mock.go -package=mocks

// PhotoSource — внешний источник фотографий (Pexels API)
type PhotoSource interface {
	Search(ctx context.Context, query string, page, perPage int) (domain.PhotoPage, error)
	Curated(ctx context.Context, page, perPage int) (domain.PhotoPage, error)
}
