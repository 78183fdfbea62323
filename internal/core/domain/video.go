package domain

import "time"

type Video struct {
	ID           string    `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
}

type Subscription struct {
	ChannelID    string
	ChannelTitle string
}

type VideoDetails struct {
	ID              string  `json:"videoId"`
	Title           string  `json:"title"`
	ChannelTitle    string  `json:"channelTitle"`
	PublishedAt     string  `json:"publishedAt"`
	DurationSeconds float64 `json:"durationSeconds"`
	Language        string  `json:"language,omitempty"`
}
