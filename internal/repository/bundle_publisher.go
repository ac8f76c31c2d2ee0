package repository

import (
	"context"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	pkgkafka "MacroPull/pkg/kafka"
	"MacroPull/pkg/util"
)

// KafkaPublisher implements Publisher for Kafka. One message per run,
// keyed by the run date so a day's reruns land in the same partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka bundle publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) drepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishBundle(ctx context.Context, b *models.AnalysisBundle) error {
	key := []byte(util.DateStamp(b.GeneratedAt))
	return p.producer.Publish(ctx, p.topic, key, b)
}

// PublishMessage sends an arbitrary payload to topic. It satisfies the log
// collector's publisher so aggregated error logs can ride the same producer.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
