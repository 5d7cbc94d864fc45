package events

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
)

// Sink is one live notification transport.
type Sink interface {
	Name() string
	Publish(ctx context.Context, n domain.Notification) error
}

type Stats struct {
	Delivered uint64 `json:"delivered"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Emitter decouples live notifications from the commit path. Emit never blocks: a full buffer
// drops the notification and counts it. Delivery failures are logged and swallowed because the
// session event log, not this channel, is the record of truth.
type Emitter struct {
	queue        chan domain.Notification
	sinks        []Sink
	log          *zap.Logger
	sinkTimeout  time.Duration
	drainTimeout time.Duration

	delivered atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

func NewEmitter(buffer int, log *zap.Logger, sinks ...Sink) *Emitter {
	if buffer <= 0 {
		buffer = 256
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		queue:        make(chan domain.Notification, buffer),
		sinks:        sinks,
		log:          log,
		sinkTimeout:  2 * time.Second,
		drainTimeout: 5 * time.Second,
	}
}

func (e *Emitter) Emit(n domain.Notification) {
	select {
	case e.queue <- n:
	default:
		e.dropped.Add(1)
		e.log.Warn("notification dropped",
			zap.String("type", n.Type),
			zap.String("session_id", n.SessionID),
			zap.Uint64("dropped_total", e.dropped.Load()))
	}
}

// Run dispatches queued notifications until ctx is cancelled, then flushes what is left in the
// buffer within the drain timeout.
func (e *Emitter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			e.drain()
			return nil
		case n := <-e.queue:
			e.dispatch(ctx, n)
		}
	}
}

func (e *Emitter) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), e.drainTimeout)
	defer cancel()
	for {
		select {
		case n := <-e.queue:
			e.dispatch(ctx, n)
		default:
			return
		}
	}
}

func (e *Emitter) dispatch(ctx context.Context, n domain.Notification) {
	for _, sink := range e.sinks {
		sctx, cancel := context.WithTimeout(ctx, e.sinkTimeout)
		err := sink.Publish(sctx, n)
		cancel()
		if err != nil {
			e.failed.Add(1)
			e.log.Warn("notification delivery failed",
				zap.String("sink", sink.Name()),
				zap.String("type", n.Type),
				zap.String("session_id", n.SessionID),
				zap.String("correlation_id", n.CorrelationID),
				zap.Error(err))
			continue
		}
		e.delivered.Add(1)
	}
}

func (e *Emitter) Stats() Stats {
	return Stats{
		Delivered: e.delivered.Load(),
		Failed:    e.failed.Load(),
		Dropped:   e.dropped.Load(),
	}
}
