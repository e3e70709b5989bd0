package domain

import (
	"strconv"
	"time"
)

// PageSize — количество фото на одну страницу ленты
const PageSize = 30

// PhotoSrc набор ссылок на варианты изображения
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Photo представляет фотографию, полученную из Pexels.
// После получения не изменяется.
type Photo struct {
	ID              int64    `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url"`
	AvgColor        string   `json:"avg_color"`
	Src             PhotoSrc `json:"src"`
	Alt             string   `json:"alt"`
}

// StableID возвращает идентификатор Pexels в текстовом виде,
// так он хранится в кэше и в избранном.
func (p Photo) StableID() string {
	return strconv.FormatInt(p.ID, 10)
}

// PhotoPage — одна страница результатов внешнего источника
type PhotoPage struct {
	Photos  []Photo
	Page    int
	HasNext bool
	Total   int
}

// CachedPhoto соответствует строке таблицы image_cache
type CachedPhoto struct {
	ID              int64     `db:"id"`
	PexelsID        string    `db:"pexels_id"`
	URL             string    `db:"url"`
	Photographer    string    `db:"photographer"`
	PhotographerURL string    `db:"photographer_url"`
	AvgColor        string    `db:"avg_color"`
	Width           int       `db:"width"`
	Height          int       `db:"height"`
	SrcOriginal     string    `db:"src_original"`
	SrcLarge2x      string    `db:"src_large2x"`
	SrcLarge        string    `db:"src_large"`
	SrcMedium       string    `db:"src_medium"`
	SrcSmall        string    `db:"src_small"`
	Alt             string    `db:"alt"`
	CachedAt        time.Time `db:"cached_at"`
}

// CachedPage — окно строк кэша и общее количество строк в таблице
type CachedPage struct {
	Rows  []CachedPhoto
	Total int
}

// NewCachedPhoto денормализует фото для записи в кэш.
func NewCachedPhoto(p Photo) CachedPhoto {
	return CachedPhoto{
		PexelsID:        p.StableID(),
		URL:             p.URL,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		AvgColor:        p.AvgColor,
		Width:           p.Width,
		Height:          p.Height,
		SrcOriginal:     p.Src.Original,
		SrcLarge2x:      p.Src.Large2x,
		SrcLarge:        p.Src.Large,
		SrcMedium:       p.Src.Medium,
		SrcSmall:        p.Src.Small,
		Alt:             p.Alt,
	}
}

// ToPhoto восстанавливает Photo из строки кэша.
// Portrait, landscape и tiny в кэше не хранятся и берутся из medium, large и small.
func (c CachedPhoto) ToPhoto() (Photo, error) {
	id, err := strconv.ParseInt(c.PexelsID, 10, 64)
	if err != nil {
		return Photo{}, err
	}
	return Photo{
		ID:              id,
		Width:           c.Width,
		Height:          c.Height,
		URL:             c.URL,
		Photographer:    c.Photographer,
		PhotographerURL: c.PhotographerURL,
		AvgColor:        c.AvgColor,
		Src: PhotoSrc{
			Original:  c.SrcOriginal,
			Large2x:   c.SrcLarge2x,
			Large:     c.SrcLarge,
			Medium:    c.SrcMedium,
			Small:     c.SrcSmall,
			Portrait:  c.SrcMedium,
			Landscape: c.SrcLarge,
			Tiny:      c.SrcSmall,
		},
		Alt: c.Alt,
	}, nil
}
