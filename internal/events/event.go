// Package events defines the messages emitted by the shortener and their consumers.
package events

import "time"

const TopicLinkCreated = "link.created"

// LinkCreated is published after a link has been durably stored.
type LinkCreated struct {
	Code      string    `json:"code"`
	TargetURL string    `json:"targetUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
