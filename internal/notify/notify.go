// Package notify delivers user notifications raised by the marketplace core.
//
// Delivery is best-effort: the Dispatcher logs and counts failures and never
// reports them to the caller, so a lost notification cannot undo the booking
// or ledger change that raised it.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

type Message struct {
	UserID  uint64                 `json:"userId"`
	Type    model.NotificationType `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Data    map[string]any         `json:"data,omitempty"`
}

// Notifier delivers a single message to one sink.
type Notifier interface {
	Notify(ctx context.Context, m Message) error
}

// Named sinks are reported under their own label in metrics.
type Named interface {
	Name() string
}

// Multi fans a message out to every sink and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, &SinkError{Sink: sinkName(n), Err: err})
		}
	}
	return errors.Join(errs...)
}

type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return e.Sink + ": " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }

func sinkName(n Notifier) string {
	if named, ok := n.(Named); ok {
		return named.Name()
	}
	return "unknown"
}

// Dispatcher — fire-and-forget обёртка над Notifier.
type Dispatcher struct {
	n   Notifier
	log *slog.Logger
}

func NewDispatcher(n Notifier, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{n: n, log: log}
}

// Dispatch delivers msgs in order. Failures are logged and swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs ...Message) {
	if d == nil || d.n == nil {
		return
	}
	for _, m := range msgs {
		if m.UserID == 0 {
			continue
		}
		err := d.n.Notify(ctx, m)
		if err == nil {
			continue
		}

		for _, e := range unjoin(err) {
			sink := sinkName(d.n)
			var se *SinkError
			if errors.As(e, &se) {
				sink = se.Sink
			}
			metrics.NotificationsDropped.WithLabelValues(sink).Inc()
		}

		d.log.WarnContext(ctx, "notification dropped",
			slog.Uint64("user_id", m.UserID),
			slog.String("type", string(m.Type)),
			slog.Any("error", err),
		)
	}
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
