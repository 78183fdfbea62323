package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subscription_feed_api/infrastructure/logger"
	"subscription_feed_api/internal/core/domain"
	"subscription_feed_api/internal/handler/rest"
	"subscription_feed_api/internal/handler/server"
	"subscription_feed_api/internal/metrics"
)

type stubFeedUseCase struct {
	feed       domain.SubscriptionFeed
	feedErr    error
	details    domain.VideoDetails
	detailsErr error

	feedCalls int
}

func (s *stubFeedUseCase) GetSubscriptionFeed(_ context.Context, _ string) (domain.SubscriptionFeed, error) {
	s.feedCalls++
	return s.feed, s.feedErr
}

func (s *stubFeedUseCase) GetVideoDetails(_ context.Context, _ string) (domain.VideoDetails, error) {
	return s.details, s.detailsErr
}

func setupRouter(t *testing.T, uc *stubFeedUseCase) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	handler := rest.NewFeedHandler(uc, logger.NewNop())

	return server.NewRouter(handler, metrics.New(), logger.NewNop())
}

func get(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	router.ServeHTTP(w, req)

	return w
}

func assertNoCacheHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}

func TestGetSubscriptionFeed_MissingToken(t *testing.T) {
	uc := &stubFeedUseCase{}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Access token required"}`, w.Body.String())
	assert.Zero(t, uc.feedCalls, "the pipeline must not run without a token")
	assertNoCacheHeaders(t, w)
}

func TestGetSubscriptionFeed_Success(t *testing.T) {
	published := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &stubFeedUseCase{
		feed: domain.SubscriptionFeed{
			Items: []domain.Video{{
				ID:           "vid-1",
				Title:        "A video",
				ThumbnailURL: "https://i.ytimg.com/vi/vid-1/mqdefault.jpg",
				PublishedAt:  published,
			}},
			SubscriptionCount: 4,
		},
	}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=tok")

	require.Equal(t, http.StatusOK, w.Code)
	assertNoCacheHeaders(t, w)

	var body struct {
		Items []struct {
			VideoID      string    `json:"videoId"`
			Title        string    `json:"title"`
			ThumbnailURL string    `json:"thumbnailUrl"`
			PublishedAt  time.Time `json:"publishedAt"`
		} `json:"items"`
		SubscriptionCount int `json:"subscriptionCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "vid-1", body.Items[0].VideoID)
	assert.Equal(t, 4, body.SubscriptionCount)
	assert.True(t, published.Equal(body.Items[0].PublishedAt))
}

func TestGetSubscriptionFeed_EmptyFeedKeepsItemsArray(t *testing.T) {
	uc := &stubFeedUseCase{
		feed: domain.SubscriptionFeed{Items: []domain.Video{}, SubscriptionCount: 1},
	}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=tok")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items": [], "subscriptionCount": 1}`, w.Body.String())
}

func TestGetSubscriptionFeed_InvalidToken(t *testing.T) {
	uc := &stubFeedUseCase{feedErr: domain.ErrInvalidToken}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=expired")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Invalid or expired access token"}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestGetSubscriptionFeed_NoSubscriptions(t *testing.T) {
	uc := &stubFeedUseCase{feedErr: domain.ErrNoSubscriptions}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=tok")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "No subscriptions found"}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestGetSubscriptionFeed_UpstreamErrorWithDetails(t *testing.T) {
	uc := &stubFeedUseCase{
		feedErr: domain.NewUpstreamError(403, "quotaExceeded", map[string]string{"reason": "quotaExceeded"}),
	}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=tok")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "quotaExceeded", "details": {"reason": "quotaExceeded"}}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestGetSubscriptionFeed_InternalError(t *testing.T) {
	uc := &stubFeedUseCase{feedErr: errors.New("connection reset")}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/videos/subscriptions?access_token=tok")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error", "details": "connection reset"}`, w.Body.String())
	assertNoCacheHeaders(t, w)
}

func TestGetVideoDetails_Success(t *testing.T) {
	uc := &stubFeedUseCase{
		details: domain.VideoDetails{
			ID:              "vid-1",
			Title:           "A video",
			ChannelTitle:    "A channel",
			PublishedAt:     "2024-06-01T10:00:00Z",
			DurationSeconds: 90,
		},
	}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/video/vid-1")

	require.Equal(t, http.StatusOK, w.Code)
	assertNoCacheHeaders(t, w)

	var details domain.VideoDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "vid-1", details.ID)
	assert.InDelta(t, 90, details.DurationSeconds, 0.001)
}

func TestGetVideoDetails_NotFound(t *testing.T) {
	uc := &stubFeedUseCase{detailsErr: domain.ErrVideoNotFound}
	router := setupRouter(t, uc)

	w := get(t, router, "/api/video/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Video not found"}`, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t, &stubFeedUseCase{})

	w := get(t, router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}
