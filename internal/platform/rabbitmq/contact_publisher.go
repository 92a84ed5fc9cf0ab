package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopher-blog/internal/model"
)

type ContactPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewContactPublisher(conn *amqp.Connection, queueName string) *ContactPublisher {
	return &ContactPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ContactPublisher) Publish(ctx context.Context, msg model.ContactMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch, p.queueName); err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal contact payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish contact message failed: %w", err)
	}
	return nil
}
