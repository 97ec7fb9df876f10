package notifier

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/hadirly/attendance-backend-go/internal/pkg/metrics"
)

// NATSNotifier publishes events to a NATS subject so external consumers
// (dashboards, alerting) can react to attendance activity.
type NATSNotifier struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *slog.Logger
}

func NewNATSNotifier(conn *nats.Conn, subjectPrefix string, logger *slog.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}
}

func (n *NATSNotifier) Publish(event Event) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		n.logger.Error("failed to marshal notification payload", "event", event.Name, "error", err)
		metrics.NotifierDropped.Inc()
		return
	}

	subject := n.subjectPrefix + "." + event.Name
	if err := n.conn.Publish(subject, payload); err != nil {
		n.logger.Error("failed to publish notification", "subject", subject, "error", err)
		metrics.NotifierDropped.Inc()
	}
}
