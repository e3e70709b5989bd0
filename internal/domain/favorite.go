package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Favorite — фото, добавленное пользователем в избранное.
// Поля для отображения плитки денормализованы, поэтому список избранного
// рендерится без обращения к Pexels.
type Favorite struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_pexels"`
	PexelsID        string    `json:"pexels_id" gorm:"not null;uniqueIndex:idx_favorites_user_pexels"`
	ImageURL        string    `json:"image_url"`
	Photographer    string    `json:"photographer"`
	PhotographerURL string    `json:"photographer_url"`
	AvgColor        string    `json:"avg_color"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite собирает запись избранного из фото
func NewFavorite(userID uuid.UUID, p Photo) Favorite {
	return Favorite{
		UserID:          userID,
		PexelsID:        p.StableID(),
		ImageURL:        p.Src.Large,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		AvgColor:        p.AvgColor,
	}
}

// Tile возвращает фото, достаточное для отрисовки плитки во вкладке избранного.
// Идентификатор, который не парсится как число, остаётся нулевым.
func (f Favorite) Tile() Photo {
	id, _ := strconv.ParseInt(f.PexelsID, 10, 64)
	return Photo{
		ID:              id,
		Photographer:    f.Photographer,
		PhotographerURL: f.PhotographerURL,
		AvgColor:        f.AvgColor,
		Src: PhotoSrc{
			Original:  f.ImageURL,
			Large2x:   f.ImageURL,
			Large:     f.ImageURL,
			Medium:    f.ImageURL,
			Small:     f.ImageURL,
			Portrait:  f.ImageURL,
			Landscape: f.ImageURL,
			Tiny:      f.ImageURL,
		},
	}
}
