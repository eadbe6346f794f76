// Package notify delivers portal and deployment emails on behalf of
// committed lifecycle transitions. Delivery is best-effort and asynchronous:
// the dispatcher never blocks a request and a failed send is reported back
// as a Delivery result, never as an error that could abort a transition.
package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/karthikr/talentflow/internal/app/models"
)

// ErrQueueFull is reported when the dispatcher's buffer is exhausted and a
// message had to be dropped.
var ErrQueueFull = errors.New("notification queue full, message dropped")

// Sender identity used for a message. When Email is empty the dispatcher's
// configured default identity is used; the Delivery portal overrides it with
// the active delivery manager's SMTP credentials.
type Identity struct {
	Name     string
	Email    string
	Password string
}

// Message is one outbound email. Recipients each receive their own copy;
// Cc is attached to every copy.
type Message struct {
	ID       uuid.UUID
	From     Identity
	To       []string
	Cc       []string
	Subject  string
	HTMLBody string
}

// NewMessage allocates a message with a fresh correlation id.
func NewMessage(to, cc []string, subject, body string) Message {
	return Message{
		ID:       uuid.New(),
		To:       to,
		Cc:       cc,
		Subject:  subject,
		HTMLBody: body,
	}
}

// Delivery is the terminal outcome of one message.
type Delivery struct {
	MessageID  uuid.UUID
	Successful int
	Failed     int
	Total      int
	Err        error
}

// Dispatcher enqueues messages for asynchronous delivery. The returned
// channel receives exactly one Delivery and is then closed; callers may
// observe it or abandon it.
type Dispatcher interface {
	Dispatch(msg Message) <-chan Delivery
}

// Sender performs the actual delivery of one message.
type Sender interface {
	Send(ctx context.Context, msg Message) Delivery
}

// PortalDirectory maps portal names to their notification addresses. The
// table is fixed configuration; the lifecycle core never sees raw addresses
// for portal-addressed messages.
type PortalDirectory map[models.Team]string

// Resolve returns the addresses for the given portals, skipping unknown ones.
func (d PortalDirectory) Resolve(portals []models.Team) []string {
	out := make([]string, 0, len(portals))
	for _, p := range portals {
		if addr, ok := d[p]; ok && addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
