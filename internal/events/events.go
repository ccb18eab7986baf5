// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/product_catalog/internal/logging"
)

const (
	TopicProducts = "product_events"
	TopicUsers    = "user_events"
	TopicCart     = "cart_events"
)

const (
	ProductCreated  = "product_created"
	ProductUpdated  = "product_updated"
	ProductDeleted  = "product_deleted"
	UserRegistered  = "user_registered"
	UserLoggedIn    = "user_logged_in"
	CartItemAdded   = "cart_item_added"
	CartItemUpdated = "cart_item_updated"
	CartItemRemoved = "cart_item_removed"
	CartCleared     = "cart_cleared"
)

// Topics lists every topic the service writes to.
var Topics = []string{TopicProducts, TopicUsers, TopicCart}

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w   messageWriter
	now func() time.Time
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaPublisher{w: w, now: time.Now}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key, eventType string, payload any) error {
	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, string, any) error { return nil }
func (Nop) Close() error                                               { return nil }

// Emit publishes and logs a failure instead of returning it.
func Emit(ctx context.Context, p Publisher, topic, key, eventType string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, eventType, payload); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"topic", topic,
			"type", eventType,
			"error", err,
		)
	}
}
