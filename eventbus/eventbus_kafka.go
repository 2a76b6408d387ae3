package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"inkpress/internal/logger"
)

// KafkaPublisher is the confluent-kafka-go backed Publisher implementation.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher initializes a Kafka producer against the given brokers.
func NewKafkaPublisher(brokers string) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// Drain producer events (delivery reports for fire-and-forget sends).
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("event delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaPublisher{producer: p}, nil
}

// Close flushes outstanding messages and shuts the producer down.
func (k *KafkaPublisher) Close() {
	if k.producer != nil {
		if remaining := k.producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("%d events still unflushed after close", remaining)
		}
		k.producer.Close()
		logger.Log.Info("kafka producer closed")
	}
}

// Publish sends the event to the given topic and waits for the delivery
// report or context cancellation.
func (k *KafkaPublisher) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce event: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver event: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
