package services

import (
	"context"
	"log"

	"papatacos/internal/core/domain"
)

// EntryObserver is notified after an entry has been stored
type EntryObserver interface {
	EntryRecorded(ctx context.Context, event domain.EntryRecorded)
}

// EventPublisher sends entry events to other systems
type EventPublisher interface {
	Publish(ctx context.Context, event domain.EntryRecorded) error
}

// PublishingObserver forwards recorded entries to an EventPublisher.
// Publish failures are logged and never reach the caller.
type PublishingObserver struct {
	Publisher EventPublisher
}

// EntryRecorded implements EntryObserver
func (o PublishingObserver) EntryRecorded(ctx context.Context, event domain.EntryRecorded) {
	if err := o.Publisher.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s #%d: %v", event.Kind, event.ID, err)
	}
}
