package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 256

// QueueDispatcher runs a single worker over a bounded buffer. Enqueueing
// never blocks: when the buffer is full the message is dropped with a
// warning and the caller's result channel reports ErrQueueFull.
type QueueDispatcher struct {
	sender      Sender
	queue       chan queued
	sendTimeout time.Duration
	logger      zerolog.Logger
	done        chan struct{}
}

type queued struct {
	msg    Message
	result chan Delivery
}

// NewQueueDispatcher starts the worker goroutine. sendTimeout bounds each
// SMTP conversation so a slow outbound send cannot stall the queue
// indefinitely.
func NewQueueDispatcher(sender Sender, queueSize int, sendTimeout time.Duration, logger zerolog.Logger) *QueueDispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &QueueDispatcher{
		sender:      sender,
		queue:       make(chan queued, queueSize),
		sendTimeout: sendTimeout,
		logger:      logger,
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues a message and returns a one-shot result channel.
func (d *QueueDispatcher) Dispatch(msg Message) <-chan Delivery {
	result := make(chan Delivery, 1)
	select {
	case d.queue <- queued{msg: msg, result: result}:
	default:
		d.logger.Warn().
			Str("messageId", msg.ID.String()).
			Str("subject", msg.Subject).
			Msg("Notification queue full, dropping message")
		result <- Delivery{MessageID: msg.ID, Total: len(msg.To), Failed: len(msg.To), Err: ErrQueueFull}
		close(result)
	}
	return result
}

// Close stops the worker after draining already-queued messages.
func (d *QueueDispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *QueueDispatcher) run() {
	defer close(d.done)
	for q := range d.queue {
		ctx := context.Background()
		cancel := func() {}
		if d.sendTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		}
		delivery := d.sender.Send(ctx, q.msg)
		cancel()

		if delivery.Err != nil || delivery.Failed > 0 {
			d.logger.Warn().
				Str("messageId", q.msg.ID.String()).
				Int("failed", delivery.Failed).
				Int("total", delivery.Total).
				Err(delivery.Err).
				Msg("Notification delivery incomplete")
		} else {
			d.logger.Info().
				Str("messageId", q.msg.ID.String()).
				Int("recipients", delivery.Successful).
				Msg("Notification delivered")
		}

		q.result <- delivery
		close(q.result)
	}
}
