package syncqueue

import (
	"context"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RetryMessage is the payload stored in RabbitMQ for a failed encounter push.
type RetryMessage struct {
	ID          string `json:"id"`
	EncounterID string `json:"encounter_id"`
	Attempt     int    `json:"attempt"`
}

// Service manages the durable retry queue and its dead-letter companion.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService declares both durable queues and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.SyncRetryQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.SyncRetryDeadLetterName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// PublishRetry enqueues an encounter id for a later push attempt.
func (s *Service) PublishRetry(ctx context.Context, encounterID string, attempt int) error {
	return s.publish(ctx, constvars.SyncRetryQueueName, &RetryMessage{
		ID:          uuid.New().String(),
		EncounterID: encounterID,
		Attempt:     attempt,
	})
}

// PublishDeadLetter parks a message that exhausted its attempts.
func (s *Service) PublishDeadLetter(ctx context.Context, message *RetryMessage) error {
	return s.publish(ctx, constvars.SyncRetryDeadLetterName, message)
}

func (s *Service) publish(ctx context.Context, queueName string, message *RetryMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    message.ID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			s.log.Error("syncqueue.publish broker nacked message",
				zap.String(constvars.LoggingQueueKey, queueName),
				zap.String(constvars.LoggingMessageIDKey, message.ID),
			)
			return exceptions.ErrQueuePublish(nil)
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}

	s.log.Info("syncqueue.publish message confirmed",
		zap.String(constvars.LoggingQueueKey, queueName),
		zap.String(constvars.LoggingMessageIDKey, message.ID),
		zap.String(constvars.LoggingEncounterIDKey, message.EncounterID),
	)
	return nil
}

// Consume delivers retry messages to handler until ctx is cancelled. A
// handler returning false leaves the message unacked for redelivery unless
// its attempts are exhausted, in which case it moves to the dead-letter
// queue.
func (s *Service) Consume(ctx context.Context, handler func(ctx context.Context, message *RetryMessage) bool) error {
	deliveries, err := s.ch.Consume(
		constvars.SyncRetryQueueName,
		"",    // consumer tag
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			s.handleDelivery(ctx, delivery, handler)
		}
	}
}

func (s *Service) handleDelivery(ctx context.Context, delivery amqp.Delivery, handler func(ctx context.Context, message *RetryMessage) bool) {
	var message RetryMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		s.log.Error("syncqueue.Consume dropping malformed message", zap.Error(err))
		delivery.Ack(false)
		return
	}

	if handler(ctx, &message) {
		delivery.Ack(false)
		return
	}

	message.Attempt++
	if message.Attempt >= constvars.SyncRetryMaxAttempts {
		if err := s.PublishDeadLetter(ctx, &message); err != nil {
			s.log.Error("syncqueue.Consume failed to dead-letter message",
				zap.String(constvars.LoggingMessageIDKey, message.ID),
				zap.Error(err),
			)
			delivery.Nack(false, true)
			return
		}
		delivery.Ack(false)
		return
	}

	if err := s.PublishRetry(ctx, message.EncounterID, message.Attempt); err != nil {
		delivery.Nack(false, true)
		return
	}
	delivery.Ack(false)
}
