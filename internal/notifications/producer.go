package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lagoona/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes notifications to the Kafka topic
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProducer creates a Kafka producer for notifications
func NewProducer(brokers []string, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true
	// Keyed by recipient so one guest's emails stay ordered
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    topic,
		log:      logger.GetDefault(),
	}, nil
}

// Publish sends one notification to the topic
func (p *Producer) Publish(ctx context.Context, notification *EmailNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(notification.Recipient),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.log.DebugContext(ctx, "notification published",
		"type", notification.Type,
		"recipient", notification.Recipient,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close shuts the producer down
func (p *Producer) Close() error {
	return p.producer.Close()
}
