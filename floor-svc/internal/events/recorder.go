package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/reqctx"
)

// Appender writes an audit row inside the caller's transaction.
type Appender interface {
	AppendEvent(ctx context.Context, event *domain.SessionEvent) error
}

// Recorder builds session events stamped with the correlation id and actor carried by ctx.
type Recorder struct {
	now func() time.Time
}

func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

func (r *Recorder) Record(ctx context.Context, tx Appender, sessionID, eventType string, payload any) (*domain.SessionEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	correlationID := reqctx.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	event := &domain.SessionEvent{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Type:          eventType,
		Payload:       raw,
		CorrelationID: correlationID,
		ActorID:       reqctx.UserID(ctx),
		CreatedAt:     r.now().UTC(),
	}
	if err := tx.AppendEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("append %s event: %w", eventType, err)
	}
	return event, nil
}
