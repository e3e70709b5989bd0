// internal/adapter/pexels/client.go
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/domain"
)

const defaultBaseURL = "https://api.pexels.com/v1"

// PexelsAPIClient представляет клиент для взаимодействия с Pexels API.
type PexelsAPIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewPexelsAPIClient создает клиент. Пустой baseURL заменяется адресом Pexels.
func NewPexelsAPIClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *PexelsAPIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &PexelsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// NewFromConfig возвращает клиент и false, если ключ API не задан
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*PexelsAPIClient, bool) {
	if cfg.PexelsAPIKey == "" {
		return nil, false
	}
	return NewPexelsAPIClient(cfg.PexelsBaseURL, cfg.PexelsAPIKey, nil, logger), true
}

// Search ищет фото по запросу.
func (c *PexelsAPIClient) Search(ctx context.Context, query string, page, perPage int) (domain.PhotoPage, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("page", strconv.Itoa(page))
	params.Add("per_page", strconv.Itoa(perPage))

	return c.fetchPage(ctx, "/search", params)
}

// Curated получает страницу подборки Pexels.
func (c *PexelsAPIClient) Curated(ctx context.Context, page, perPage int) (domain.PhotoPage, error) {
	params := url.Values{}
	params.Add("page", strconv.Itoa(page))
	params.Add("per_page", strconv.Itoa(perPage))

	return c.fetchPage(ctx, "/curated", params)
}

// fetchPage выполняет запрос к Pexels и маппит ответ в domain.PhotoPage.
func (c *PexelsAPIClient) fetchPage(ctx context.Context, path string, params url.Values) (domain.PhotoPage, error) {
	start := time.Now()
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("build pexels request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pexels request failed", "path", path, "error", err)
		return domain.PhotoPage{}, fmt.Errorf("%w: request %s: %v", apperr.ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("pexels returned non-200",
			"path", path,
			"status", resp.StatusCode,
		)
		return domain.PhotoPage{}, fmt.Errorf("%w: pexels API вернул статус %d: %s",
			apperr.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var listResponse PexelsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResponse); err != nil {
		return domain.PhotoPage{}, fmt.Errorf("%w: decode pexels response: %v", apperr.ErrSourceUnavailable, err)
	}

	photos := make([]domain.Photo, 0, len(listResponse.Photos))
	for i := range listResponse.Photos {
		photos = append(photos, mapPexelsPhotoToDomain(&listResponse.Photos[i]))
	}

	c.logger.Debug("pexels page fetched",
		"path", path,
		"page", listResponse.Page,
		"count", len(photos),
		"has_next", listResponse.NextPage != "",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return domain.PhotoPage{
		Photos:  photos,
		Page:    listResponse.Page,
		HasNext: listResponse.NextPage != "",
		Total:   listResponse.TotalResults,
	}, nil
}

// mapPexelsPhotoToDomain преобразует PexelsPhotoResponse в domain.Photo.
func mapPexelsPhotoToDomain(p *PexelsPhotoResponse) domain.Photo {
	return domain.Photo{
		ID:              p.ID,
		Width:           p.Width,
		Height:          p.Height,
		URL:             p.URL,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		AvgColor:        p.AvgColor,
		Src: domain.PhotoSrc{
			Original:  p.Src.Original,
			Large2x:   p.Src.Large2x,
			Large:     p.Src.Large,
			Medium:    p.Src.Medium,
			Small:     p.Src.Small,
			Portrait:  p.Src.Portrait,
			Landscape: p.Src.Landscape,
			Tiny:      p.Src.Tiny,
		},
		Alt: p.Alt,
	}
}
