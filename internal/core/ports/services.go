package ports

import (
	"context"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// EventPublisher publishes crew events to a message broker.
type EventPublisher interface {
	PublishCrewUpdate(ctx context.Context, update *domain.CrewUpdate) error
	PublishPresence(ctx context.Context, presence *domain.Presence) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to crew events from a message broker.
type EventSubscriber interface {
	SubscribeCrewUpdates(ctx context.Context, handler func(ctx context.Context, update *domain.CrewUpdate) error) error
	SubscribePresence(ctx context.Context, handler func(ctx context.Context, presence *domain.Presence) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
