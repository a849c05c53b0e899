package notifications

import (
	"context"
	"fmt"

	"lagoona/internal/bookings"
	"lagoona/internal/safaris"
	"lagoona/internal/shared/config"
	"lagoona/pkg/logger"
)

// Service owns the notification pipeline: it publishes lifecycle events
// to Kafka and runs the consumer workers that turn them into emails.
// It satisfies bookings.Notifier and safaris.EnquiryNotifier.
type Service struct {
	producer *Producer
	consumer *Consumer
	log      *logger.Logger
}

// NewService wires the producer and consumer. The SMTP sender is used
// when a host is configured; otherwise deliveries are logged.
func NewService(cfg *config.Config) (*Service, error) {
	producer, err := NewProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	if err != nil {
		return nil, err
	}

	var sender EmailSender
	if cfg.Email.SMTPHost != "" {
		sender = NewSMTPEmailService(cfg.Email)
	} else {
		sender = NewMockEmailService()
	}

	consumer, err := NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.ConsumerGroupID,
		cfg.Kafka.NotificationTopic,
		cfg.Kafka.ConsumerWorkers,
		sender,
	)
	if err != nil {
		producer.Close()
		return nil, err
	}

	return &Service{
		producer: producer,
		consumer: consumer,
		log:      logger.GetDefault(),
	}, nil
}

// Start launches the consumer workers
func (s *Service) Start() {
	s.consumer.Start()
	s.log.Info("notification service started")
}

// Stop flushes and closes the pipeline
func (s *Service) Stop() error {
	var firstErr error
	if err := s.consumer.Stop(); err != nil {
		firstErr = fmt.Errorf("failed to stop consumer: %w", err)
	}
	if err := s.producer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close producer: %w", err)
	}
	return firstErr
}

// PublishBookingReceived implements bookings.Notifier
func (s *Service) PublishBookingReceived(ctx context.Context, booking *bookings.Booking) error {
	return s.producer.Publish(ctx, BuildBookingReceived(booking))
}

// PublishBookingConfirmed implements bookings.Notifier
func (s *Service) PublishBookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	return s.producer.Publish(ctx, BuildBookingConfirmed(booking))
}

// PublishBookingCancelled implements bookings.Notifier
func (s *Service) PublishBookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	return s.producer.Publish(ctx, BuildBookingCancelled(booking))
}

// PublishPaymentReceipt implements bookings.Notifier
func (s *Service) PublishPaymentReceipt(ctx context.Context, booking *bookings.Booking, payment *bookings.Payment) error {
	return s.producer.Publish(ctx, BuildPaymentReceipt(booking, payment))
}

// PublishEnquiryReceived implements safaris.EnquiryNotifier
func (s *Service) PublishEnquiryReceived(ctx context.Context, enquiry *safaris.Enquiry, tour *safaris.Tour) error {
	return s.producer.Publish(ctx, BuildEnquiryReceived(enquiry, tour))
}
