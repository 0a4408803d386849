package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gatherly/pkg/logger"

	"github.com/IBM/sarama"
)

// Handler processes one decoded notification. Returning an error leaves the
// offset unmarked so the record is redelivered.
type Handler func(ctx context.Context, notification *BookingNotification) error

type Consumer interface {
	Start(ctx context.Context) error
	Close() error
}

type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	Topics         []string
	SessionTimeout time.Duration
	Heartbeat      time.Duration
	OffsetOldest   bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:        []string{"localhost:9092"},
		GroupID:        "gatherly-notification-workers",
		Topics:         []string{"booking-notifications"},
		SessionTimeout: 30 * time.Second,
		Heartbeat:      3 * time.Second,
		OffsetOldest:   false,
	}
}

type kafkaConsumer struct {
	group   sarama.ConsumerGroup
	config  *ConsumerConfig
	handler Handler
	log     *logger.Logger
	cancel  context.CancelFunc
}

func NewKafkaConsumer(config *ConsumerConfig, handler Handler) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if handler == nil {
		handler = defaultHandler
	}

	return &kafkaConsumer{
		group:   group,
		config:  config,
		handler: handler,
		log:     logger.GetDefault(),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", "error", err)
		}
	}()

	go func() {
		handler := &groupHandler{handler: c.handler, log: c.log}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
					c.log.Error("consume failed", "error", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	c.log.Info("notification consumer started",
		"group", c.config.GroupID, "topics", c.config.Topics)
	return nil
}

func (c *kafkaConsumer) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

func defaultHandler(ctx context.Context, notification *BookingNotification) error {
	logger.GetDefault().Info("booking notification received",
		"type", string(notification.Type),
		"booking_id", notification.BookingID.String(),
		"event_id", notification.EventID.String(),
		"num_tickets", notification.NumTickets)
	return nil
}

type groupHandler struct {
	handler Handler
	log     *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var notification BookingNotification
			if err := json.Unmarshal(message.Value, &notification); err != nil {
				// Malformed records are logged and skipped, not redelivered
				h.log.Error("failed to decode notification",
					"topic", message.Topic, "offset", message.Offset, "error", err)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(session.Context(), &notification); err != nil {
				h.log.Error("notification handler failed",
					"booking_id", notification.BookingID.String(), "error", err)
				continue
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
