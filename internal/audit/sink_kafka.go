package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

const defaultTopic = "facturador.audit"

// KafkaSink publishes audit events to a Kafka topic, keyed by issuer NIT so
// one issuer's history stays in order.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

type KafkaSinkOption func(*KafkaSink)

// WithTopic overrides the audit topic.
func WithTopic(topic string) KafkaSinkOption {
	return func(s *KafkaSink) { s.topic = topic }
}

func NewKafkaSink(brokers []string, opts ...KafkaSinkOption) (*KafkaSink, error) {
	s := &KafkaSink{topic: defaultTopic}
	for _, opt := range opts {
		opt(s)
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(s.topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to kafka: %w", err)
	}
	s.client = client
	return s, nil
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.NIT),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("producing audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
