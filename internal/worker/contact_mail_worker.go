package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"gopher-blog/internal/model"
)

// ContactMailWorker drains the contact queue into a ContactDelivery.
type ContactMailWorker struct {
	conn      *amqp.Connection
	delivery  *ContactDelivery
	queueName string
	log       logrus.FieldLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewContactMailWorker(conn *amqp.Connection, delivery *ContactDelivery, queueName string, log logrus.FieldLogger) *ContactMailWorker {
	return &ContactMailWorker{
		conn:      conn,
		delivery:  delivery,
		queueName: queueName,
		log:       log,
	}
}

func (w *ContactMailWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	w.log.WithField("queue", w.queueName).Info("contact worker started")
	return nil
}

func (w *ContactMailWorker) handle(ctx context.Context, d amqp.Delivery) {
	msg, err := decodeContact(d.Body)
	if err != nil {
		w.log.WithError(err).Error("worker decode contact message failed")
		_ = d.Nack(false, false)
		return
	}
	if err := w.delivery.Deliver(ctx, msg); err != nil {
		w.log.WithError(err).Error("worker deliver contact message failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func decodeContact(body []byte) (model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, err
	}
	if msg.Email == "" || msg.Message == "" {
		return msg, fmt.Errorf("contact message missing email or body")
	}
	return msg, nil
}

func (w *ContactMailWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
