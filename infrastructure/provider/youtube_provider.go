package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sosodev/duration"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"subscription_feed_api/internal/core/domain"
	"subscription_feed_api/internal/core/ports"
	"subscription_feed_api/internal/metrics"
)

const (
	maxSubscriptionResults = 50
	maxVideosPerChannel    = 5
)

type youtubeProvider struct {
	apiKey  string
	log     ports.LoggerPort
	metrics *metrics.Metrics
	opts    []option.ClientOption

	searchService *youtube.Service
	mu            sync.Mutex
}

// NewYoutubeProvider builds the upstream adapter. The API key authenticates
// the server-side search calls; user-scoped calls are authenticated with the
// caller's token per request. Extra client options (custom endpoints, HTTP
// clients) are forwarded to every service, which is how tests point the
// provider at fake upstreams.
func NewYoutubeProvider(apiKey string, logger ports.LoggerPort, m *metrics.Metrics, opts ...option.ClientOption) ports.YoutubePort {
	return &youtubeProvider{
		apiKey:  apiKey,
		log:     logger,
		metrics: m,
		opts:    opts,
	}
}

// getSearchService lazily creates the API-key-authenticated service shared by
// all requests. User-token services are never cached here.
func (s *youtubeProvider) getSearchService(ctx context.Context) (*youtube.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchService != nil {
		return s.searchService, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(s.apiKey)}, s.opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube search service", err)
		return nil, fmt.Errorf("error while create youtube search service: %w", err)
	}

	s.searchService = service
	return service, nil
}

func (s *youtubeProvider) newUserService(accessToken string, ctx context.Context) (*youtube.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	opts := append([]option.ClientOption{option.WithTokenSource(source)}, s.opts...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube user service", err)
		return nil, fmt.Errorf("error while create youtube user service: %w", err)
	}

	return service, nil
}

func (s *youtubeProvider) ValidateToken(accessToken string, ctx context.Context) error {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	opts := append([]option.ClientOption{option.WithTokenSource(source)}, s.opts...)

	service, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create userinfo service", err)
		return fmt.Errorf("error while create userinfo service: %w", err)
	}

	if _, err = service.Userinfo.Get().Context(ctx).Do(); err != nil {
		s.metrics.RecordUpstreamCall("userinfo", "error")
		s.log.Error("access token rejected by userinfo endpoint", err)
		return domain.ErrInvalidToken
	}

	s.metrics.RecordUpstreamCall("userinfo", "success")
	s.log.Info("Access token validated")

	return nil
}

func (s *youtubeProvider) GetSubscribedChannels(accessToken string, ctx context.Context) ([]domain.Subscription, error) {
	service, err := s.newUserService(accessToken, ctx)
	if err != nil {
		return nil, err
	}

	call := service.Subscriptions.List([]string{"snippet"}).Mine(true).MaxResults(maxSubscriptionResults)

	response, err := call.Context(ctx).Do()
	if err != nil {
		s.metrics.RecordUpstreamCall("subscriptions.list", "error")
		s.log.Error("error while call subscriptions endpoint", err)
		return nil, asUpstreamError(err)
	}

	s.metrics.RecordUpstreamCall("subscriptions.list", "success")

	subscriptions := make([]domain.Subscription, 0, len(response.Items))
	for _, item := range response.Items {
		if item == nil || item.Snippet == nil {
			continue
		}

		sub := domain.Subscription{ChannelTitle: item.Snippet.Title}
		if item.Snippet.ResourceId != nil {
			sub.ChannelID = item.Snippet.ResourceId.ChannelId
		}

		subscriptions = append(subscriptions, sub)
	}

	s.log.Info(fmt.Sprintf("Fetched %d subscriptions", len(subscriptions)))

	return subscriptions, nil
}

func (s *youtubeProvider) GetRecentVideosFromChannel(channelID string, ctx context.Context) ([]domain.Video, error) {
	service, err := s.getSearchService(ctx)
	if err != nil {
		return nil, err
	}

	call := service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(maxVideosPerChannel).
		Order("date").
		Type("video")

	response, err := call.Context(ctx).Do()
	if err != nil {
		s.metrics.RecordUpstreamCall("search.list", "error")
		s.metrics.RecordChannelSkip()
		return nil, fmt.Errorf("error while call search endpoint for channel %s: %w", channelID, err)
	}

	s.metrics.RecordUpstreamCall("search.list", "success")

	return sanitizeSearchItems(response.Items), nil
}

// sanitizeSearchItems maps raw search results to the fixed video shape.
// Records without a video ID or a medium thumbnail URL are dropped; a missing
// title becomes "" and a missing or malformed publish date becomes now.
// Upstream order is preserved for the survivors.
func sanitizeSearchItems(items []*youtube.SearchResult) []domain.Video {
	videos := make([]domain.Video, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		var video domain.Video

		if item.Id != nil {
			video.ID = item.Id.VideoId
		}

		video.PublishedAt = time.Now()
		if item.Snippet != nil {
			video.Title = item.Snippet.Title
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
				video.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
			}
			if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				video.PublishedAt = published
			}
		}

		if video.ID == "" || video.ThumbnailURL == "" {
			continue
		}

		videos = append(videos, video)
	}

	return videos
}

func (s *youtubeProvider) GetVideoDetails(videoID string, ctx context.Context) (domain.VideoDetails, error) {
	service, err := s.getSearchService(ctx)
	if err != nil {
		return domain.VideoDetails{}, err
	}

	call := service.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID)

	response, err := call.Context(ctx).Do()
	if err != nil {
		s.metrics.RecordUpstreamCall("videos.list", "error")
		s.log.Error("error while call videos endpoint", err)
		return domain.VideoDetails{}, asUpstreamError(err)
	}

	s.metrics.RecordUpstreamCall("videos.list", "success")

	if len(response.Items) == 0 {
		return domain.VideoDetails{}, domain.ErrVideoNotFound
	}

	item := response.Items[0]

	details := domain.VideoDetails{ID: item.Id}
	if item.Snippet != nil {
		details.Title = item.Snippet.Title
		details.ChannelTitle = item.Snippet.ChannelTitle
		details.PublishedAt = item.Snippet.PublishedAt
		details.Language = item.Snippet.DefaultAudioLanguage
	}

	if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
		parsed, parseErr := duration.Parse(item.ContentDetails.Duration)
		if parseErr != nil {
			return domain.VideoDetails{}, fmt.Errorf("error while parsing video duration: %w", parseErr)
		}
		details.DurationSeconds = parsed.ToTimeDuration().Seconds()
	}

	return details, nil
}

// asUpstreamError converts a Google API error into the envelope error the
// handler returns, keeping the status code and message the platform sent.
func asUpstreamError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("error in call youtube api: %w", err)
	}

	var details any
	if len(gerr.Errors) > 0 {
		details = gerr.Errors
	}

	return domain.NewUpstreamError(gerr.Code, gerr.Message, details)
}
