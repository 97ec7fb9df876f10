package notifier

// Event is a domain notification fanned out to interested listeners.
type Event struct {
	Name string
	Data map[string]any
}

// Notifier delivers events best-effort. Implementations must never block the
// caller for long and must swallow delivery failures.
type Notifier interface {
	Publish(event Event)
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(Event) {}
