package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Config holds Kafka producer settings
type Config struct {
	Brokers string
	Topic   string
}

// BrokersList returns brokers as a slice
func (c Config) BrokersList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// KafkaPublisher wraps a confluent producer writing to a single topic
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewPublisher returns a Kafka publisher, or Noop when no brokers are configured.
func NewPublisher(cfg Config, logger *slog.Logger) (Publisher, error) {
	if len(cfg.BrokersList()) == 0 {
		logger.Info("Kafka not configured, blog events disabled")
		return Noop{}, nil
	}
	return NewKafkaPublisher(cfg, logger)
}

// NewKafkaPublisher creates an idempotent producer and starts its delivery report loop
func NewKafkaPublisher(cfg Config, logger *slog.Logger) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     strings.Join(cfg.BrokersList(), ","),
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 5,
		"message.timeout.ms":                    30000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	kp := &KafkaPublisher{
		producer: p,
		topic:    cfg.Topic,
		logger:   logger,
	}

	go kp.handleDeliveryReports()

	logger.Info("Kafka producer initialized",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic)

	return kp, nil
}

// Publish enqueues the event keyed by post id so a post's events stay ordered.
// Delivery is reported asynchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := toMessage(p.topic, e)
	if err != nil {
		return err
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	p.logger.Debug("Blog event queued",
		"topic", p.topic,
		"type", e.Type,
		"post_id", e.PostID)

	return nil
}

func toMessage(topic string, e Event) (*kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(e.PostID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}, nil
}

func (p *KafkaPublisher) handleDeliveryReports() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.logger.Error("Delivery failed",
					"topic", *ev.TopicPartition.Topic,
					"error", ev.TopicPartition.Error)
			}
		case kafka.Error:
			p.logger.Warn("Kafka producer error", "error", ev)
		}
	}
}

// Close flushes outstanding messages for up to 10 seconds and closes the producer
func (p *KafkaPublisher) Close() {
	if remaining := p.producer.Flush(10000); remaining > 0 {
		p.logger.Error("Some blog events were not delivered", "count", remaining)
	}
	p.producer.Close()
	p.logger.Info("Kafka producer closed")
}
