package notifier

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/sse"
)

// SSENotifier broadcasts events to every connected SSE subscriber.
type SSENotifier struct {
	hub *sse.Hub
}

func NewSSENotifier(hub *sse.Hub) *SSENotifier {
	return &SSENotifier{hub: hub}
}

func (n *SSENotifier) Publish(event Event) {
	n.hub.Broadcast(sse.Event{
		Event: event.Name,
		Data:  event.Data,
	})
}
