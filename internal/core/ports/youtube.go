package ports

import (
	"context"
	"subscription_feed_api/internal/core/domain"
)

type YoutubePort interface {
	ValidateToken(accessToken string, ctx context.Context) error
	GetSubscribedChannels(accessToken string, ctx context.Context) ([]domain.Subscription, error)
	GetRecentVideosFromChannel(channelID string, ctx context.Context) ([]domain.Video, error)
	GetVideoDetails(videoID string, ctx context.Context) (domain.VideoDetails, error)
}
