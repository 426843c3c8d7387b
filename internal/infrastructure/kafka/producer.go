package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/pkg/kafka/producer"
)

type EventProducer struct {
	*producer.Producer
	topic           string
	deadLetterTopic string
}

func NewEventProducer(producer *producer.Producer, topic, deadLetterTopic string) *EventProducer {
	return &EventProducer{
		producer,
		topic,
		deadLetterTopic,
	}
}

func (ep *EventProducer) SendEvents(ctx context.Context, events []*entity.OutboxEvent) error {
	var msgsToSend []kafka.Message

	for _, event := range events {
		msg := kafka.Message{
			Topic: ep.topic,
			Key:   []byte(event.AggregateID.String()),
			Value: event.Payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.ID.String())},
			},
		}
		msgsToSend = append(msgsToSend, msg)
	}

	if len(msgsToSend) == 0 {
		return nil
	}

	err := ep.Writer.WriteMessages(ctx, msgsToSend...)
	if err != nil {
		return fmt.Errorf("EventProducer - SendEvents - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) SendDeadLetter(ctx context.Context, key, value []byte) error {
	err := ep.Writer.WriteMessages(ctx, kafka.Message{
		Topic: ep.deadLetterTopic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("EventProducer - SendDeadLetter - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()
	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
