package broker

import (
	"context"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	applog "revivedgoods/internal/log"
)

const readRetryWait = time.Second

// Kafka publishes changes to one topic. Each instance reads with its own
// consumer group so every instance sees every change.
type Kafka struct {
	brokers []string
	topic   string
	groupID string
	writer  *kafkaGo.Writer
}

func NewKafka(brokers []string, topic, instanceID string) *Kafka {
	return &Kafka{
		brokers: brokers,
		topic:   topic,
		groupID: "revivedgoods-" + instanceID,
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkaGo.Hash{},
		},
	}
}

// Publish keys messages by profile so one profile's changes stay ordered.
func (k *Kafka) Publish(ctx context.Context, c Change) error {
	payload, err := encode(c)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(c.Profile),
		Value: payload,
	})
}

func (k *Kafka) Subscribe(ctx context.Context, fn func(Change)) error {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.brokers,
		Topic:       k.topic,
		GroupID:     k.groupID,
		StartOffset: kafkaGo.LastOffset,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			applog.Error(nil, "broker.kafka.read.fail", err, map[string]any{"topic": k.topic})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryWait):
			}
			continue
		}
		c, err := decode(msg.Value)
		if err != nil {
			applog.Warn(nil, "broker.kafka.decode.fail", err, map[string]any{"topic": k.topic})
			continue
		}
		fn(c)
	}
}

func (k *Kafka) Close() error { return k.writer.Close() }
