package narration

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/IBM/sarama"

	"lessoncast/config"
)

// Producer publishes narration jobs to Kafka. Jobs are keyed by target entity
// so re-narrations of the same entity land on one partition in order.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerFromEnv reads brokers from KAFKA_BROKERS (comma separated).
func NewProducerFromEnv() (*Producer, error) {
	brokers := strings.Split(config.GetEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ",")
	return NewProducer(brokers, config.NarrationTopic)
}

// NewProducer creates a synchronous Kafka producer for the given topic.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return &Producer{producer: producer, topic: topic}, nil
}

// Enqueue publishes one job and waits for broker acknowledgement.
func (p *Producer) Enqueue(job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(job.Target.EntityID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue narration job %s: %w", job.ID, err)
	}

	log.Printf("Enqueued narration job %s (%s) partition=%d offset=%d", job.ID, job.Target.Kind, partition, offset)
	return nil
}

// EnqueueAll publishes jobs in order, stopping at the first failure.
func (p *Producer) EnqueueAll(jobs []Job) error {
	for _, job := range jobs {
		if err := p.Enqueue(job); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts the producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
