package events

import (
	"context"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
)

// nopPublisher drops events. Used when Kafka is disabled.
type nopPublisher struct{}

func NewNop() *nopPublisher { return &nopPublisher{} }

func (*nopPublisher) OrderCreated(context.Context, entities.Order) error       { return nil }
func (*nopPublisher) OrderStatusChanged(context.Context, entities.Order) error { return nil }

func (*nopPublisher) Close() error { return nil }
