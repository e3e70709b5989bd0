package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/augcode13-glitch/paapimg/internal/logger"
	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
	"github.com/augcode13-glitch/paapimg/internal/mocks"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubRefill struct {
	result usecase.RefillResult
	err    error
	calls  int
}

func (s *stubRefill) Refill(context.Context, usecase.RefillOptions) (usecase.RefillResult, error) {
	s.calls++
	return s.result, s.err
}

type stubPublisher struct {
	published []payloads.RefillRequestPayload
	err       error
}

func (s *stubPublisher) PublishRefillRequest(_ context.Context, p payloads.RefillRequestPayload) error {
	s.published = append(s.published, p)
	return s.err
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

type testServer struct {
	router    http.Handler
	cache     *mocks.MockCacheStorage
	source    *mocks.MockPhotoSource
	favorites *mocks.MockFavoriteStorage
	users     *mocks.MockUserStorage
	refill    *stubRefill
	publisher *stubPublisher
	verifier  *auth.Verifier
}

func newTestServer(t *testing.T, withPublisher bool) *testServer {
	t.Helper()
	mc := gomock.NewController(t)

	ts := &testServer{
		cache:     mocks.NewMockCacheStorage(mc),
		source:    mocks.NewMockPhotoSource(mc),
		favorites: mocks.NewMockFavoriteStorage(mc),
		users:     mocks.NewMockUserStorage(mc),
		refill:    &stubRefill{},
	}

	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		Secret:   "this-is-a-valid-test-secret-32-chars-long",
		Issuer:   "paapimg",
		Audience: "paapimg-web",
	})
	require.NoError(t, err)
	ts.verifier = verifier

	log := logger.Discard()
	registry := feed.NewRegistry(feed.Deps{
		Source:    ts.source,
		Cache:     ts.cache,
		Favorites: ts.favorites,
	}, time.Minute, log)

	var h *FeedHandler
	if withPublisher {
		ts.publisher = &stubPublisher{}
		h = NewFeedHandler(ts.refill, ts.publisher, stubPinger{}, log)
	} else {
		h = NewFeedHandler(ts.refill, nil, stubPinger{}, log)
	}

	ts.router = NewRouter(RouterConfig{
		Handler:        h,
		Registry:       registry,
		Verifier:       verifier,
		Users:          ts.users,
		RequestTimeout: 5 * time.Second,
		Logger:         log,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func cachedPage(n, total int) domain.CachedPage {
	rows := make([]domain.CachedPhoto, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, domain.NewCachedPhoto(domain.Photo{ID: int64(i)}))
	}
	return domain.CachedPage{Rows: rows, Total: total}
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) feed.State {
	t.Helper()
	var st feed.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestGetFeed_IssuesSessionAndReusesIt(t *testing.T) {
	ts := newTestServer(t, false)
	ts.cache.EXPECT().ListCachedPhotos(gomock.Any(), 0, domain.PageSize).
		Return(cachedPage(2, 2), nil).Times(1)

	rec := ts.do(t, http.MethodGet, "/api/feed", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)
	_, err := uuid.Parse(sessionID)
	require.NoError(t, err)

	st := decodeState(t, rec)
	assert.Len(t, st.Photos, 2)
	assert.False(t, st.HasMore)

	rec = ts.do(t, http.MethodGet, "/api/feed", nil, map[string]string{SessionHeader: sessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, rec.Header().Get(SessionHeader))
	assert.Len(t, decodeState(t, rec).Photos, 2)
}

func TestSearchAndNextPage(t *testing.T) {
	ts := newTestServer(t, false)
	ts.source.EXPECT().Search(gomock.Any(), "mountains", 1, domain.PageSize).
		Return(domain.PhotoPage{Photos: []domain.Photo{{ID: 1}}, HasNext: true}, nil)
	ts.source.EXPECT().Search(gomock.Any(), "mountains", 2, domain.PageSize).
		Return(domain.PhotoPage{Photos: []domain.Photo{{ID: 2}}, HasNext: false}, nil)

	rec := ts.do(t, http.MethodPost, "/api/feed/search", map[string]string{"term": "mountains"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sid := map[string]string{SessionHeader: rec.Header().Get(SessionHeader)}
	assert.Equal(t, "mountains", decodeState(t, rec).SearchTerm)

	rec = ts.do(t, http.MethodPost, "/api/feed/next", nil, sid)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp nextPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Started)
	assert.Len(t, resp.State.Photos, 2)

	rec = ts.do(t, http.MethodPost, "/api/feed/next", nil, sid)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Started)
}

func TestSetTab(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodPost, "/api/feed/tab", map[string]string{"tab": "everything"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/feed/tab", map[string]string{"tab": "favorites"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, feed.TabFavorites, st.Tab)
	assert.True(t, st.Empty)
	assert.False(t, st.Loading)
}

func TestToggleFavorite_Anonymous(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodPost, "/api/favorites/toggle",
		map[string]interface{}{"photo": domain.Photo{ID: 10}}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var res feed.ToggleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, feed.ToggleSignInRequired, res.Status)
	assert.Equal(t, feed.SignInPrompt, res.Prompt)
}

func TestToggleFavorite_SignedIn(t *testing.T) {
	ts := newTestServer(t, false)
	user := domain.User{ID: uuid.New(), Email: "me@example.com"}
	token, err := ts.verifier.Issue(user, time.Minute)
	require.NoError(t, err)
	headers := map[string]string{"Authorization": "Bearer " + token}

	ts.users.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u domain.User) error {
			assert.Equal(t, user.ID, u.ID)
			assert.Equal(t, "me@example.com", u.Email)
			return nil
		}).Times(1)
	ts.favorites.EXPECT().ListFavorites(gomock.Any(), user.ID).Return([]domain.Favorite{}, nil).Times(1)
	ts.favorites.EXPECT().CreateFavorite(gomock.Any(), gomock.Any()).Return(nil)

	rec := ts.do(t, http.MethodPost, "/api/favorites/toggle",
		map[string]interface{}{"photo": domain.Photo{ID: 10}}, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	var res feed.ToggleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, feed.ToggleAdded, res.Status)

	headers[SessionHeader] = rec.Header().Get(SessionHeader)
	rec = ts.do(t, http.MethodGet, "/api/favorites", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	var favs favoritesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &favs))
	require.Len(t, favs.Favorites, 1)
	assert.Equal(t, "10", favs.Favorites[0].PexelsID)
}

func TestToggleFavorite_BadRequest(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodPost, "/api/favorites/toggle", map[string]interface{}{"photo": map[string]int{"id": 0}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Rejections(t *testing.T) {
	ts := newTestServer(t, false)

	tests := []struct {
		name   string
		header string
	}{
		{name: "not bearer", header: "Basic abc"},
		{name: "invalid token", header: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, "/api/feed", nil, map[string]string{"Authorization": tt.header})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_UpsertFailure(t *testing.T) {
	ts := newTestServer(t, false)
	token, err := ts.verifier.Issue(domain.User{ID: uuid.New()}, time.Minute)
	require.NoError(t, err)

	ts.users.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).Return(apperr.ErrStoreWrite)

	rec := ts.do(t, http.MethodGet, "/api/favorites", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListFavorites_Anonymous(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/api/favorites", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefillCache(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := newTestServer(t, false)
		ts.refill.result = usecase.RefillResult{Success: true, Message: "Cached 80 images", Count: 80, RunID: "r1"}

		rec := ts.do(t, http.MethodPost, "/api/cache/refill", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var res usecase.RefillResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Success)
		assert.Equal(t, 80, res.Count)
	})

	t.Run("failure", func(t *testing.T) {
		ts := newTestServer(t, false)
		ts.refill.result = usecase.RefillResult{Success: false, Message: "photo source unavailable"}
		ts.refill.err = apperr.ErrSourceUnavailable

		rec := ts.do(t, http.MethodPost, "/api/cache/refill", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("async without queue", func(t *testing.T) {
		ts := newTestServer(t, false)
		rec := ts.do(t, http.MethodPost, "/api/cache/refill?async=true", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, 0, ts.refill.calls)
	})

	t.Run("async enqueues", func(t *testing.T) {
		ts := newTestServer(t, true)
		rec := ts.do(t, http.MethodPost, "/api/cache/refill?async=true", nil, nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		require.Len(t, ts.publisher.published, 1)
		assert.Equal(t, "http", ts.publisher.published[0].Source)
		assert.Equal(t, 0, ts.refill.calls)
	})

	t.Run("async publish error", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.publisher.err = errors.New("channel closed")
		rec := ts.do(t, http.MethodPost, "/api/cache/refill?async=true", nil, nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	h := NewFeedHandler(&stubRefill{}, nil, stubPinger{err: errors.New("down")}, logger.Discard())
	rec = httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
