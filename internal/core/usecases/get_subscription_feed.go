package usecases

import (
	"context"
	"fmt"

	"subscription_feed_api/internal/core/domain"
)

func (uc *feedUseCase) GetSubscriptionFeed(ctx context.Context, accessToken string) (domain.SubscriptionFeed, error) {
	uc.log.Info("Init Get Subscription Feed")

	if accessToken == "" {
		return domain.SubscriptionFeed{}, domain.ErrMissingToken
	}

	if err := uc.service.ValidateToken(accessToken, ctx); err != nil {
		uc.log.Error("Failed to validate access token", err)
		return domain.SubscriptionFeed{}, err
	}

	subscriptions, err := uc.service.GetSubscribedChannels(accessToken, ctx)
	if err != nil {
		uc.log.Error("Failed to get subscribed channels", err)
		return domain.SubscriptionFeed{}, err
	}

	if len(subscriptions) == 0 {
		uc.log.Warning("No subscriptions found for user")
		return domain.SubscriptionFeed{}, domain.ErrNoSubscriptions
	}

	channelIDs := extractChannelIDs(subscriptions)

	feed := domain.SubscriptionFeed{
		Items:             uc.collectChannelVideos(channelIDs, ctx),
		SubscriptionCount: len(channelIDs),
	}

	feed.SortByPublish()
	feed.Truncate(maxFeedItems)

	uc.log.Info("Get Subscription Feed Completed")

	return feed, nil
}

// extractChannelIDs keeps the channel identifier of each subscription,
// dropping records that have none. Order is preserved.
func extractChannelIDs(subscriptions []domain.Subscription) []string {
	ids := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if sub.ChannelID == "" {
			continue
		}
		ids = append(ids, sub.ChannelID)
	}
	return ids
}

// collectChannelVideos fetches the recent videos of every channel one at a
// time. A channel whose fetch fails contributes nothing; the loop keeps going.
func (uc *feedUseCase) collectChannelVideos(channelIDs []string, ctx context.Context) []domain.Video {
	videos := make([]domain.Video, 0, len(channelIDs))

	for _, channelID := range channelIDs {
		batch, err := uc.service.GetRecentVideosFromChannel(channelID, ctx)
		if err != nil {
			uc.log.Warning(fmt.Sprintf("Skipping channel %s after fetch error: %v", channelID, err))
			continue
		}
		videos = append(videos, batch...)
	}

	return videos
}
