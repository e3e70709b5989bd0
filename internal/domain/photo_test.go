package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePhoto() Photo {
	return Photo{
		ID:              2014422,
		Width:           3024,
		Height:          3024,
		URL:             "https://www.pexels.com/photo/2014422/",
		Photographer:    "Joey Farina",
		PhotographerURL: "https://www.pexels.com/@joey",
		AvgColor:        "#978E82",
		Src: PhotoSrc{
			Original: "o.jpg",
			Large2x:  "l2.jpg",
			Large:    "l.jpg",
			Medium:   "m.jpg",
			Small:    "s.jpg",
		},
		Alt: "Brown Rocks During Golden Hour",
	}
}

func TestCachedPhoto_ToPhotoBackfillsVariants(t *testing.T) {
	row := NewCachedPhoto(samplePhoto())
	assert.Equal(t, "2014422", row.PexelsID)

	p, err := row.ToPhoto()
	require.NoError(t, err)
	assert.Equal(t, int64(2014422), p.ID)
	assert.Equal(t, "m.jpg", p.Src.Portrait)
	assert.Equal(t, "l.jpg", p.Src.Landscape)
	assert.Equal(t, "s.jpg", p.Src.Tiny)
	assert.Equal(t, "Brown Rocks During Golden Hour", p.Alt)
	assert.Equal(t, "#978E82", p.AvgColor)
}

func TestCachedPhoto_ToPhotoBadID(t *testing.T) {
	_, err := CachedPhoto{PexelsID: "abc"}.ToPhoto()
	assert.Error(t, err)
}

func TestFavorite_FromPhotoAndTile(t *testing.T) {
	userID := uuid.New()
	fav := NewFavorite(userID, samplePhoto())

	assert.Equal(t, userID, fav.UserID)
	assert.Equal(t, "2014422", fav.PexelsID)
	assert.Equal(t, "l.jpg", fav.ImageURL)

	tile := fav.Tile()
	assert.Equal(t, int64(2014422), tile.ID)
	assert.Equal(t, "Joey Farina", tile.Photographer)
	assert.Equal(t, "l.jpg", tile.Src.Medium)
	assert.Equal(t, tile.StableID(), fav.PexelsID)
}
