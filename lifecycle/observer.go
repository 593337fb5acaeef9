package lifecycle

import (
	"context"
	"time"

	"github.com/juniorwebdev83/auto-qa/elevateai"
	"github.com/juniorwebdev83/auto-qa/logger"
)

// Event describes one state transition during a run.
type Event struct {
	InteractionID elevateai.InteractionID
	From          State
	To            State
	// Status is the last remote status observed, empty before the first poll.
	Status elevateai.Status
	// Err is set on transitions into failure states.
	Err error
	// Elapsed is the time since the run started.
	Elapsed time.Duration
}

// Observer receives state transitions as they happen. Implementations must
// not block; the orchestrator calls them synchronously.
type Observer interface {
	StateChanged(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) StateChanged(ctx context.Context, e Event) {
	f(ctx, e)
}

type logObserver struct {
	log *logger.Logger
}

// NewLogObserver logs every transition at info level, failures at warn.
func NewLogObserver(log *logger.Logger) Observer {
	return &logObserver{log: log.WithComponent("lifecycle")}
}

func (o *logObserver) StateChanged(_ context.Context, e Event) {
	fields := map[string]interface{}{
		logger.FieldInteraction: string(e.InteractionID),
		logger.FieldState:       e.To.String(),
		"from":                  e.From.String(),
		logger.FieldDuration:    e.Elapsed.String(),
	}
	if e.Status != "" {
		fields[logger.FieldStatus] = string(e.Status)
	}
	if e.Err != nil {
		o.log.WithError(e.Err).Warn("interaction failed", fields)
		return
	}
	o.log.Info("interaction state changed", fields)
}

type multiObserver []Observer

func (m multiObserver) StateChanged(ctx context.Context, e Event) {
	for _, o := range m {
		o.StateChanged(ctx, e)
	}
}
