package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lagoona/pkg/logger"

	"github.com/IBM/sarama"
)

const maxDeliveryAttempts = 3

// Consumer runs a Kafka consumer group whose workers deliver emails
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	workers int
	sender  EmailSender
	log     *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer creates the notification consumer group
func NewConsumer(brokers []string, groupID, topic string, workers int, sender EmailSender) (*Consumer, error) {
	cfg := sarama.NewConfig()
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	if workers < 1 {
		workers = 1
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		workers: workers,
		sender:  sender,
		log:     logger.GetDefault(),
	}, nil
}

// Start launches the consume loop and error drain
func (c *Consumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", "error", err.Error())
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		handler := &consumerHandler{sender: c.sender, workers: c.workers, log: c.log}
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				c.log.Error("consume session ended", "error", err.Error())
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// Stop shuts the consumer down and waits for in-flight deliveries
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.group.Close()
	c.wg.Wait()
	return err
}

// consumerHandler fans messages out to a bounded worker pool
type consumerHandler struct {
	sender  EmailSender
	workers int
	log     *logger.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	sem := make(chan struct{}, h.workers)
	var wg sync.WaitGroup

	for message := range claim.Messages() {
		sem <- struct{}{}
		wg.Add(1)
		go func(msg *sarama.ConsumerMessage) {
			defer wg.Done()
			defer func() { <-sem }()
			h.handle(msg)
			session.MarkMessage(msg, "")
		}(message)
	}

	wg.Wait()
	return nil
}

func (h *consumerHandler) handle(msg *sarama.ConsumerMessage) {
	var notification EmailNotification
	if err := json.Unmarshal(msg.Value, &notification); err != nil {
		h.log.Error("dropping malformed notification", "error", err.Error(), "offset", msg.Offset)
		return
	}

	// Exponential backoff between delivery attempts
	backoff := time.Second
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		notification.Attempts = attempt
		err := h.sender.Send(&notification)
		if err == nil {
			h.log.Info("notification delivered",
				"type", notification.Type,
				"recipient", notification.Recipient,
				"attempt", attempt,
			)
			return
		}

		h.log.Warn("notification delivery failed",
			"type", notification.Type,
			"recipient", notification.Recipient,
			"attempt", attempt,
			"error", err.Error(),
		)
		if attempt < maxDeliveryAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	h.log.Error("notification dropped after retries",
		"type", notification.Type,
		"recipient", notification.Recipient,
	)
}
