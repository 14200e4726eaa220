package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/emrgen/prd/internal/config"
	"github.com/sirupsen/logrus"
)

const flushTimeoutMs = 5000

var _ EventQueue = (*KafkaEventQueue)(nil)

// KafkaEventQueue publishes events keyed by prd id, so the events of one PRD
// stay ordered within a partition.
type KafkaEventQueue struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewKafkaEventQueue(brokers, topic string) (*KafkaEventQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	q := &KafkaEventQueue{producer: producer, topic: topic, done: make(chan struct{})}
	go q.report()

	return q, nil
}

// NewEventQueue connects to KAFKA_BROKERS, or returns the nop queue when it is unset.
func NewEventQueue(cfg *config.Config) (EventQueue, error) {
	if cfg.Kafka.Brokers == "" {
		logrus.Info("KAFKA_BROKERS not set, prd events disabled")
		return NewNop(), nil
	}

	return NewKafkaEventQueue(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

// report drains delivery reports so the producer never blocks on them.
func (q *KafkaEventQueue) report() {
	defer close(q.done)
	for e := range q.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				logrus.Errorf("prd event delivery failed: %v", ev.TopicPartition.Error)
			}
		case kafka.Error:
			logrus.Errorf("kafka producer error: %v", ev)
		}
	}
}

func (q *KafkaEventQueue) Publish(ctx context.Context, event *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return q.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &q.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.PrdID),
		Value:          value,
	}, nil)
}

func (q *KafkaEventQueue) Close() {
	if remaining := q.producer.Flush(flushTimeoutMs); remaining > 0 {
		logrus.Warnf("%d prd events not delivered before shutdown", remaining)
	}
	q.producer.Close()
	<-q.done
}
