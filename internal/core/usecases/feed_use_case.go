package usecases

import (
	"context"
	"subscription_feed_api/internal/core/domain"
	"subscription_feed_api/internal/core/ports"
)

// maxFeedItems is the number of videos returned by the subscription feed.
const maxFeedItems = 10

type feedUseCase struct {
	service ports.YoutubePort
	log     ports.LoggerPort
}

type FeedUseCase interface {
	GetSubscriptionFeed(ctx context.Context, accessToken string) (domain.SubscriptionFeed, error)
	GetVideoDetails(ctx context.Context, videoID string) (domain.VideoDetails, error)
}

func NewFeedUseCase(service ports.YoutubePort, logger ports.LoggerPort) FeedUseCase {
	return &feedUseCase{
		service: service,
		log:     logger,
	}
}
