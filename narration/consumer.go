package narration

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/IBM/sarama"

	"lessoncast/config"
)

// JobHandler processes one narration job. A returned error leaves the message
// unmarked so the group redelivers it.
type JobHandler interface {
	Process(ctx context.Context, job Job) error
}

// Consumer pulls narration jobs off Kafka and hands them to a JobHandler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler JobHandler
	topic   string
	groupID string
	ready   chan bool
}

// ConsumerConfig holds the Kafka consumer group settings.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler JobHandler
}

// NewConsumerFromEnv reads brokers from KAFKA_BROKERS (comma separated) and
// uses the standard narration topic and group.
func NewConsumerFromEnv(handler JobHandler) (*Consumer, error) {
	return NewConsumer(ConsumerConfig{
		Brokers: strings.Split(config.GetEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
		Topic:   config.NarrationTopic,
		GroupID: config.NarrationGroupID,
		Handler: handler,
	})
}

// NewConsumer creates a consumer group member for narration jobs.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming until ctx is canceled. It returns once the group has
// joined and the first session is ready.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{jobs: c.handler, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Narration consumer context canceled")
					return
				}
				log.Printf("Narration consumer error: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("Narration consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("Narration consumer group error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler for narration jobs.
type groupHandler struct {
	jobs  JobHandler
	ready chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var job Job
			if err := json.Unmarshal(message.Value, &job); err != nil {
				// Malformed payloads are marked so the group does not wedge
				// on a poison message.
				log.Printf("Dropping malformed narration job at offset %d: %v", message.Offset, err)
				session.MarkMessage(message, "")
				continue
			}

			log.Printf("Processing narration job %s (%s %s)", job.ID, job.Target.Kind, job.Target.EntityID)
			if err := h.jobs.Process(session.Context(), job); err != nil {
				log.Printf("Narration job %s failed, leaving unmarked for retry: %v", job.ID, err)
				continue
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
