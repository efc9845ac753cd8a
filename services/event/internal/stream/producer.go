// Package stream publishes reward-request verdicts to Kafka for audit.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "reward-request-verdicts"

// Verdict is the audit record of one reward claim outcome.
type Verdict struct {
	RequestID   string    `json:"requestId"`
	UserID      string    `json:"userId"`
	EventID     string    `json:"eventId"`
	Result      string    `json:"result"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requestedAt"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *Producer) PublishVerdict(ctx context.Context, v Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kafka: marshal verdict: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(v.RequestID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
