package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

// Runs against a real broker when KAFKA_TEST_BROKER is set, e.g. kafka:9092.
func TestKafkaPublisher_Broker(t *testing.T) {
	broker := os.Getenv("KAFKA_TEST_BROKER")
	if broker == "" {
		t.Skip("KAFKA_TEST_BROKER not set")
	}

	ensureTopics(t, broker, Topics...)

	p := NewKafkaPublisher([]string{broker})
	t.Cleanup(func() { _ = p.Close() })

	ev := consumeNextEvent(t, broker, TopicProducts, func() {
		require.NoError(t, p.Publish(context.Background(), TopicProducts, "7", ProductDeleted, map[string]any{"id": 7}))
	})
	require.Equal(t, ProductDeleted, ev["type"])
}

func consumeNextEvent(t *testing.T, broker, topic string, produce func()) map[string]any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", broker, topic, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	produce()

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)

	var event map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &event))
	return event
}

func ensureTopics(t *testing.T, broker string, topics ...string) {
	t.Helper()

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	admin, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer admin.Close()

	var cfgs []kafka.TopicConfig
	for _, tp := range topics {
		cfgs = append(cfgs, kafka.TopicConfig{
			Topic:             tp,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	err = admin.CreateTopics(cfgs...)
	if err != nil && !strings.Contains(err.Error(), "Topic with this name already exists") {
		require.NoError(t, err)
	}
}
