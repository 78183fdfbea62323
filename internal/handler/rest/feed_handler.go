package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"subscription_feed_api/internal/core/domain"
	"subscription_feed_api/internal/core/ports"
	"subscription_feed_api/internal/core/usecases"
)

type FeedHandler struct {
	useCase usecases.FeedUseCase
	log     ports.LoggerPort
}

func NewFeedHandler(useCase usecases.FeedUseCase, logger ports.LoggerPort) *FeedHandler {
	return &FeedHandler{
		useCase: useCase,
		log:     logger,
	}
}

// GetSubscriptionFeed returns the 10 most recent videos across the caller's
// subscribed channels.
func (h *FeedHandler) GetSubscriptionFeed(c *gin.Context) {
	accessToken := c.Query("access_token")
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrMissingToken.Message})
		return
	}

	feed, err := h.useCase.GetSubscriptionFeed(c.Request.Context(), accessToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// GetVideoDetails returns metadata for a single video, including its duration
// in seconds.
func (h *FeedHandler) GetVideoDetails(c *gin.Context) {
	details, err := h.useCase.GetVideoDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// respondError maps an error to its JSON envelope. Typed errors keep their
// status and message; anything else is an internal error with the underlying
// message as details.
func (h *FeedHandler) respondError(c *gin.Context, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message}
		if apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
		c.JSON(apiErr.StatusCode, body)
		return
	}

	h.log.Error("Unhandled error in request", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"details": err.Error(),
	})
}
