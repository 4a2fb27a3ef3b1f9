package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"medidex/internal/models"
)

// KafkaChannel publishes the order-created event as JSON, keyed by order id
// so downstream consumers see per-order ordering.
type KafkaChannel struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaChannel(brokers []string, topic string) (*KafkaChannel, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 500 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaChannel{producer: producer, topic: topic}, nil
}

func (c *KafkaChannel) Name() string { return "kafka" }

func (c *KafkaChannel) Send(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: c.topic,
		Key:   sarama.StringEncoder(order.ID.Hex()),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = c.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to kafka: %w", err)
	}
	return nil
}

func (c *KafkaChannel) Close() error {
	return c.producer.Close()
}
