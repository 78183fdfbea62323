package usecases

import (
	"context"
	"fmt"

	"subscription_feed_api/internal/core/domain"
)

func (uc *feedUseCase) GetVideoDetails(ctx context.Context, videoID string) (domain.VideoDetails, error) {
	uc.log.Info("Init Get Video Details")

	if videoID == "" {
		return domain.VideoDetails{}, fmt.Errorf("video ID cannot be empty")
	}

	details, err := uc.service.GetVideoDetails(videoID, ctx)
	if err != nil {
		uc.log.Error("Failed to get video details", err)
		return domain.VideoDetails{}, err
	}

	uc.log.Info("Get Video Details Completed")

	return details, nil
}
