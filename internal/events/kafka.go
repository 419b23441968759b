package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/config"
	"github.com/ArtemGolubev/medshop-service/internal/entities"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is the payload published for order lifecycle changes.
// Downstream consumers (notifications, analytics) read this topic.
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	PharmacyID  string    `json:"pharmacy_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

type kafkaPublisher struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *kafkaPublisher) OrderCreated(ctx context.Context, o entities.Order) error {
	return p.publish(ctx, eventOrderCreated, o)
}

func (p *kafkaPublisher) OrderStatusChanged(ctx context.Context, o entities.Order) error {
	return p.publish(ctx, eventOrderStatusChanged, o)
}

func (p *kafkaPublisher) publish(ctx context.Context, event string, o entities.Order) error {
	payload, err := json.Marshal(OrderEvent{
		Event:       event,
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		PharmacyID:  o.PharmacyID,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount.String(),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	// В библиотеке уже есть retry
	msg := kafka.Message{
		Key:   []byte(o.ID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event, err)
	}

	p.logger.Debug("event published",
		slog.String("event", event),
		slog.String("order_id", o.ID),
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
