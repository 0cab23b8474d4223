package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"interno-chat/internal/model"
	"interno-chat/internal/pkg/logger"
)

// MessageStore persists one queued draft. The message service satisfies it.
type MessageStore interface {
	CreateMessage(ctx context.Context, draft model.MessageDraft) (*model.Message, error)
}

type DeliveryObserver interface {
	ObserveQueuedMessage(ok bool)
}

type MessagePersistWorker struct {
	conn      *amqp.Connection
	store     MessageStore
	queueName string
	log       *logger.Logger
	observer  DeliveryObserver

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMessagePersistWorker(
	conn *amqp.Connection,
	store MessageStore,
	queueName string,
	log *logger.Logger,
	observer DeliveryObserver,
) *MessagePersistWorker {
	if log == nil {
		log = logger.Nop()
	}
	return &MessagePersistWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log.With("component", "message_persist_worker", "queue", queueName),
		observer:  observer,
	}
}

func (w *MessagePersistWorker) Start(ctx context.Context) error {
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

	// one unacked delivery at a time keeps messages of a chat in order
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
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
					w.log.Warn("delivery channel closed")
					return
				}
				err := w.handle(workerCtx, d.Body)
				w.observe(err == nil)
				if err != nil {
					w.log.LogError(err, "persist queued message failed", "delivery_tag", d.DeliveryTag)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.log.Info("message worker started")
	return nil
}

func (w *MessagePersistWorker) handle(ctx context.Context, body []byte) error {
	var draft model.MessageDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		return fmt.Errorf("decode message draft failed: %w", err)
	}

	msg, err := w.store.CreateMessage(ctx, draft)
	if err != nil {
		return fmt.Errorf("store message for chat %d failed: %w", draft.ChatID, err)
	}
	w.log.Debug("queued message stored", "message_id", msg.ID, "chat_id", msg.ChatID)
	return nil
}

func (w *MessagePersistWorker) observe(ok bool) {
	if w.observer != nil {
		w.observer.ObserveQueuedMessage(ok)
	}
}

func (w *MessagePersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
