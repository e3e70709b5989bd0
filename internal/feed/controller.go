// Package feed управляет состоянием ленты одной сессии просмотра:
// выбор источника, пагинация, накопление результатов и избранное.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/augcode13-glitch/paapimg/internal/metrics"
	"github.com/google/uuid"
)

// SessionProvider отдаёт текущего пользователя и сообщает о входе и выходе
type SessionProvider interface {
	CurrentUser() *domain.User
	Subscribe(fn auth.ChangeFunc) (unsubscribe func())
}

// Deps — зависимости контроллера. Source может быть nil, если ключ Pexels не задан.
type Deps struct {
	Source    ports.PhotoSource
	Cache     ports.CacheStorage
	Favorites ports.FavoriteStorage
	Session   SessionProvider
	Logger    *slog.Logger
}

// errNothingUsable: ни кэш, ни Pexels не дали страницу
var errNothingUsable = errors.New("neither cache nor source usable")

// Controller владеет состоянием ленты. Мьютекс держится только между
// обращениями к сети и хранилищу, никогда во время них.
type Controller struct {
	source    ports.PhotoSource
	cache     ports.CacheStorage
	favorites ports.FavoriteStorage
	session   SessionProvider
	logger    *slog.Logger

	unsubscribe func()
	closeOnce   sync.Once

	mu      sync.Mutex
	photos  []domain.Photo
	seen    map[int64]struct{}
	page    int
	hasMore bool
	term    string
	tab     Tab
	loading bool
	// started: для текущего запроса уже запускалась загрузка первой страницы
	started    bool
	generation uint64

	favs          []domain.Favorite
	favGeneration uint64
}

func NewController(deps Deps) *Controller {
	c := &Controller{
		source:    deps.Source,
		cache:     deps.Cache,
		favorites: deps.Favorites,
		session:   deps.Session,
		logger:    deps.Logger,
		seen:      make(map[int64]struct{}),
		page:      1,
		tab:       TabCurated,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.session != nil {
		c.unsubscribe = c.session.Subscribe(c.onSessionChange)
	}
	return c
}

// Mount выполняет первичную загрузку: избранное вошедшего пользователя
// и первую страницу ленты, если она ещё не запрашивалась.
func (c *Controller) Mount(ctx context.Context) {
	if user := c.currentUser(); user != nil {
		c.mu.Lock()
		needFavorites := c.favs == nil
		c.mu.Unlock()
		if needFavorites {
			c.onSessionChange(ctx, user)
		}
	}

	c.mu.Lock()
	if c.started || c.tab != TabCurated {
		c.mu.Unlock()
		return
	}
	gen, term := c.beginFirstPageLocked()
	c.mu.Unlock()

	c.load(ctx, gen, 1, term)
}

// SetSearchTerm заменяет поисковый запрос и перезагружает первую страницу.
// Пустой запрос означает подборку.
func (c *Controller) SetSearchTerm(ctx context.Context, term string) {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	c.term = term
	c.page = 1
	c.hasMore = false
	c.resetPhotosLocked()
	c.generation++
	// незавершённые загрузки теперь устаревшие
	c.loading = false
	c.started = false

	if c.tab != TabCurated {
		c.mu.Unlock()
		return
	}
	gen, term := c.beginFirstPageLocked()
	c.mu.Unlock()

	c.load(ctx, gen, 1, term)
}

// SetTab переключает вкладку. Фото не загружаются, кроме случая,
// когда лента ещё ни разу не запрашивалась.
func (c *Controller) SetTab(ctx context.Context, tab Tab) {
	c.mu.Lock()
	c.tab = tab
	if tab != TabCurated || c.started || c.loading {
		c.mu.Unlock()
		return
	}
	gen, term := c.beginFirstPageLocked()
	c.mu.Unlock()

	c.load(ctx, gen, 1, term)
}

// RequestNextPage подгружает следующую страницу. Ничего не делает, пока идёт
// загрузка, на вкладке избранного и когда страниц больше нет.
// Возвращает true, если загрузка была запущена.
func (c *Controller) RequestNextPage(ctx context.Context) bool {
	c.mu.Lock()
	if c.loading || c.tab != TabCurated || !c.hasMore {
		c.mu.Unlock()
		return false
	}
	c.page++
	page, term, gen := c.page, c.term, c.generation
	c.loading = true
	c.mu.Unlock()

	c.load(ctx, gen, page, term)
	return true
}

// IsFavorite сравнивает id фото в текстовом виде с pexels_id строк избранного
func (c *Controller) IsFavorite(photo domain.Photo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.findFavoriteLocked(photo.StableID())
	return ok
}

// ToggleFavorite добавляет фото в избранное или удаляет его.
// Локальное состояние меняется только после подтверждённой записи.
func (c *Controller) ToggleFavorite(ctx context.Context, photo domain.Photo) (result ToggleResult) {
	defer func() {
		metrics.FavoriteToggles.WithLabelValues(string(result.Status)).Inc()
	}()

	user := c.currentUser()
	if user == nil {
		return ToggleResult{Status: ToggleSignInRequired, Prompt: SignInPrompt}
	}

	pexelsID := photo.StableID()

	c.mu.Lock()
	existing, found := c.findFavoriteLocked(pexelsID)
	favGen := c.favGeneration
	c.mu.Unlock()

	if c.favorites == nil {
		c.logger.Error("favorites store is not configured")
		return ToggleResult{Status: ToggleFailed, Favorite: found}
	}

	start := time.Now()
	if found {
		err := c.favorites.DeleteFavorite(ctx, user.ID, existing.ID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			c.logger.Error("failed to delete favorite",
				"pexels_id", pexelsID,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return ToggleResult{Status: ToggleFailed, Favorite: true}
		}

		c.mu.Lock()
		if favGen == c.favGeneration {
			c.removeFavoriteLocked(existing.ID)
		}
		c.mu.Unlock()

		c.logger.Info("favorite removed", "pexels_id", pexelsID, "duration_ms", time.Since(start).Milliseconds())
		return ToggleResult{Status: ToggleRemoved, Favorite: false}
	}

	fav := domain.NewFavorite(user.ID, photo)
	if err := c.favorites.CreateFavorite(ctx, &fav); err != nil {
		c.logger.Error("failed to create favorite",
			"pexels_id", pexelsID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return ToggleResult{Status: ToggleFailed, Favorite: false}
	}

	c.mu.Lock()
	if favGen == c.favGeneration {
		if _, dup := c.findFavoriteLocked(pexelsID); !dup {
			c.favs = append([]domain.Favorite{fav}, c.favs...)
		}
	}
	c.mu.Unlock()

	c.logger.Info("favorite added", "pexels_id", pexelsID, "duration_ms", time.Since(start).Milliseconds())
	return ToggleResult{Status: ToggleAdded, Favorite: true}
}

// Favorites возвращает копию избранного, новые первыми
func (c *Controller) Favorites() []domain.Favorite {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Favorite, len(c.favs))
	copy(out, c.favs)
	return out
}

// Snapshot возвращает копию состояния для отрисовки
func (c *Controller) Snapshot() State {
	signedIn := c.currentUser() != nil

	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Tab:         c.tab,
		SearchTerm:  c.term,
		Page:        c.page,
		SignedIn:    signedIn,
		FavoriteIDs: make([]string, 0, len(c.favs)),
	}
	for _, f := range c.favs {
		st.FavoriteIDs = append(st.FavoriteIDs, f.PexelsID)
	}

	if c.tab == TabFavorites {
		st.Photos = make([]domain.Photo, 0, len(c.favs))
		for _, f := range c.favs {
			st.Photos = append(st.Photos, f.Tile())
		}
		st.Empty = len(st.Photos) == 0
		return st
	}

	st.Photos = make([]domain.Photo, len(c.photos))
	copy(st.Photos, c.photos)
	st.HasMore = c.hasMore
	st.Loading = c.loading
	st.Empty = !c.loading && len(st.Photos) == 0
	return st
}

// Close отписывает контроллер от сессии
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
	})
}

func (c *Controller) currentUser() *domain.User {
	if c.session == nil {
		return nil
	}
	return c.session.CurrentUser()
}

func (c *Controller) beginFirstPageLocked() (uint64, string) {
	c.started = true
	c.loading = true
	c.page = 1
	return c.generation, c.term
}

func (c *Controller) resetPhotosLocked() {
	c.photos = nil
	c.seen = make(map[int64]struct{})
}

// load получает страницу и применяет результат, если поколение не сменилось
func (c *Controller) load(ctx context.Context, gen uint64, page int, term string) {
	b, err := c.fetch(ctx, page, term)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		metrics.StaleLoadsDiscarded.Inc()
		c.logger.Debug("discarding stale feed load", "page", page, "term", term)
		return
	}
	c.loading = false

	if err != nil {
		c.logger.Error("feed load failed", "page", page, "term", term, "error", err)
		if errors.Is(err, errNothingUsable) {
			c.hasMore = false
		}
		return
	}

	if page == 1 {
		c.resetPhotosLocked()
	}
	for _, p := range b.photos {
		if _, dup := c.seen[p.ID]; dup {
			continue
		}
		c.seen[p.ID] = struct{}{}
		c.photos = append(c.photos, p)
	}
	c.hasMore = b.hasMore
}

type batch struct {
	photos  []domain.Photo
	hasMore bool
}

// fetch выбирает источник: поиск идёт только в Pexels, подборка сначала из кэша
func (c *Controller) fetch(ctx context.Context, page int, term string) (batch, error) {
	if term != "" {
		return c.fetchSource(ctx, metrics.SourceSearch, func(src ports.PhotoSource) (domain.PhotoPage, error) {
			return src.Search(ctx, term, page, domain.PageSize)
		})
	}

	offset := (page - 1) * domain.PageSize
	b, err := c.fetchCache(ctx, offset)
	if err == nil && len(b.photos) > 0 {
		return b, nil
	}
	if err != nil {
		c.logger.Warn("cache read failed, falling back to curated", "offset", offset, "error", err)
	}

	b, err = c.fetchSource(ctx, metrics.SourceCurated, func(src ports.PhotoSource) (domain.PhotoPage, error) {
		return src.Curated(ctx, page, domain.PageSize)
	})
	if err != nil {
		return batch{}, fmt.Errorf("%w: %w", errNothingUsable, err)
	}
	return b, nil
}

func (c *Controller) fetchCache(ctx context.Context, offset int) (b batch, err error) {
	if c.cache == nil {
		return batch{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.FeedLoads.WithLabelValues(metrics.SourceCache, metrics.ResultLabel(err)).Inc()
		metrics.FeedLoadDuration.WithLabelValues(metrics.SourceCache).Observe(time.Since(start).Seconds())
	}()

	cached, err := c.cache.ListCachedPhotos(ctx, offset, domain.PageSize)
	if err != nil {
		return batch{}, err
	}

	photos := make([]domain.Photo, 0, len(cached.Rows))
	for _, row := range cached.Rows {
		p, convErr := row.ToPhoto()
		if convErr != nil {
			c.logger.Warn("skipping cached row with bad pexels_id", "pexels_id", row.PexelsID, "error", convErr)
			continue
		}
		photos = append(photos, p)
	}

	c.logger.Debug("feed page read from cache",
		"offset", offset,
		"rows", len(photos),
		"total", cached.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return batch{photos: photos, hasMore: offset+domain.PageSize < cached.Total}, nil
}

func (c *Controller) fetchSource(ctx context.Context, source string, call func(ports.PhotoSource) (domain.PhotoPage, error)) (b batch, err error) {
	if c.source == nil {
		return batch{}, fmt.Errorf("%w: PEXELS_API_KEY is not configured", apperr.ErrSourceUnavailable)
	}

	start := time.Now()
	defer func() {
		metrics.FeedLoads.WithLabelValues(source, metrics.ResultLabel(err)).Inc()
		metrics.FeedLoadDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}()

	resp, err := call(c.source)
	if err != nil {
		return batch{}, err
	}

	c.logger.Debug("feed page fetched from pexels",
		"source", source,
		"count", len(resp.Photos),
		"has_next", resp.HasNext,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return batch{photos: resp.Photos, hasMore: resp.HasNext}, nil
}

// onSessionChange перечитывает избранное при входе и очищает при выходе
func (c *Controller) onSessionChange(ctx context.Context, user *domain.User) {
	c.mu.Lock()
	c.favGeneration++
	gen := c.favGeneration
	c.favs = nil
	c.mu.Unlock()

	if user == nil || c.favorites == nil {
		return
	}

	start := time.Now()
	favs, err := c.favorites.ListFavorites(ctx, user.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.favGeneration {
		return
	}
	if err != nil {
		c.logger.Error("failed to load favorites", "user_id", user.ID, "error", err)
		return
	}
	if favs == nil {
		favs = []domain.Favorite{}
	}
	c.favs = favs
	c.logger.Debug("favorites loaded",
		"user_id", user.ID,
		"count", len(favs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (c *Controller) findFavoriteLocked(pexelsID string) (domain.Favorite, bool) {
	for _, f := range c.favs {
		if f.PexelsID == pexelsID {
			return f, true
		}
	}
	return domain.Favorite{}, false
}

func (c *Controller) removeFavoriteLocked(id uuid.UUID) {
	kept := make([]domain.Favorite, 0, len(c.favs))
	for _, f := range c.favs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	c.favs = kept
}
