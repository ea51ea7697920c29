package meme

import (
	"context"
	"time"
)

// EventType names what happened to a post.
type EventType string

const (
	EventSubmitted EventType = "submitted"
	EventApproved  EventType = "approved"
	EventRejected  EventType = "rejected"
	EventBanned    EventType = "banned"
)

// Event is emitted when a post changes stage.
type Event struct {
	Type        EventType
	SubmitterID int64
	Review      CardRef
	Public      CardRef
	At          time.Time
}

// EventSink receives moderation events. Delivery is best effort.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}
