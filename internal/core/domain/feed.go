package domain

import "sort"

type SubscriptionFeed struct {
	Items             []Video `json:"items"`
	SubscriptionCount int     `json:"subscriptionCount"`
}

// SortByPublish orders the feed newest-first. Ties keep their relative order.
func (f *SubscriptionFeed) SortByPublish() {
	sort.SliceStable(f.Items, func(i, j int) bool {
		return f.Items[i].PublishedAt.After(f.Items[j].PublishedAt)
	})
}

func (f *SubscriptionFeed) Truncate(limit int) {
	if limit >= 0 && len(f.Items) > limit {
		f.Items = f.Items[:limit]
	}
}
