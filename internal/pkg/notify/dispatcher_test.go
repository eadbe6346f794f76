package notify

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikr/talentflow/internal/app/models"
)

// stubSender records sent messages and can be made to block so queue
// behavior is observable.
type stubSender struct {
	started chan struct{}
	release chan struct{}
	outcome func(msg Message) Delivery
}

func newStubSender() *stubSender {
	return &stubSender{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (s *stubSender) Send(ctx context.Context, msg Message) Delivery {
	s.started <- struct{}{}
	<-s.release
	if s.outcome != nil {
		return s.outcome(msg)
	}
	return Delivery{MessageID: msg.ID, Successful: len(msg.To), Total: len(msg.To)}
}

func TestQueueDispatcherDeliversResult(t *testing.T) {
	sender := newStubSender()
	close(sender.release) // never block

	d := NewQueueDispatcher(sender, 4, time.Second, zerolog.Nop())
	defer d.Close()

	msg := NewMessage([]string{"a@x.com", "b@x.com"}, nil, "subject", "body")
	result := d.Dispatch(msg)

	select {
	case delivery, ok := <-result:
		require.True(t, ok)
		assert.Equal(t, msg.ID, delivery.MessageID)
		assert.Equal(t, 2, delivery.Successful)
		assert.NoError(t, delivery.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery result")
	}

	// The one-shot channel closes after the result.
	_, ok := <-result
	assert.False(t, ok)
}

func TestQueueDispatcherDropsWhenFull(t *testing.T) {
	sender := newStubSender()
	d := NewQueueDispatcher(sender, 1, time.Second, zerolog.Nop())

	// First message occupies the worker.
	d.Dispatch(NewMessage([]string{"a@x.com"}, nil, "first", ""))
	select {
	case <-sender.started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first message")
	}

	// Second fills the buffer; third has nowhere to go.
	d.Dispatch(NewMessage([]string{"b@x.com"}, nil, "second", ""))
	dropped := NewMessage([]string{"c@x.com", "d@x.com"}, nil, "third", "")
	result := d.Dispatch(dropped)

	select {
	case delivery := <-result:
		assert.ErrorIs(t, delivery.Err, ErrQueueFull)
		assert.Equal(t, 2, delivery.Failed)
		assert.Equal(t, 2, delivery.Total)
	default:
		t.Fatal("drop should report immediately")
	}

	close(sender.release)
	d.Close()
}

func TestQueueDispatcherCloseDrains(t *testing.T) {
	sender := newStubSender()
	close(sender.release)

	d := NewQueueDispatcher(sender, 8, time.Second, zerolog.Nop())

	results := make([]<-chan Delivery, 0, 5)
	for i := 0; i < 5; i++ {
		results = append(results, d.Dispatch(NewMessage([]string{"a@x.com"}, nil, "subject", "")))
	}

	d.Close()

	for _, r := range results {
		select {
		case delivery, ok := <-r:
			require.True(t, ok)
			assert.NoError(t, delivery.Err)
		default:
			t.Fatal("queued message was not drained before Close returned")
		}
	}
}

func TestPortalDirectoryResolve(t *testing.T) {
	dir := PortalDirectory{
		models.TeamHROps: "hrops@x.com",
		models.TeamAdmin: "",
	}

	// Empty and unknown portals are skipped.
	got := dir.Resolve([]models.Team{models.TeamHROps, models.TeamAdmin, models.TeamLD})
	assert.Equal(t, []string{"hrops@x.com"}, got)
}
