package publish

import (
	"encoding/json"
	"fmt"
	"log"

	"newsbrief/types"

	"github.com/IBM/sarama"
)

// KafkaConfig holds producer configuration.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaPublisher emits one message per completed ArticleRecord so
// downstream renderers can consume articles as they become available.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher creates a synchronous producer with full-ack
// durability.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("creating Kafka producer: %w", err)
	}

	return &KafkaPublisher{producer: producer, topic: cfg.Topic}, nil
}

// PublishBatch sends every article record in the batch, keyed by URL so
// re-runs of the same article land in the same partition. Individual
// send failures are logged and counted, not fatal.
func (p *KafkaPublisher) PublishBatch(batch *types.BatchResult) (int, error) {
	published := 0
	for _, article := range batch.Articles {
		b, err := json.Marshal(article)
		if err != nil {
			return published, fmt.Errorf("encoding article %s: %w", article.URL, err)
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(article.URL),
			Value: sarama.ByteEncoder(b),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			log.Printf("Warning: Kafka publish failed for %s: %v", article.URL, err)
			continue
		}
		published++
	}
	return published, nil
}

// Close shuts the producer down.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
