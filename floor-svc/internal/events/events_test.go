package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/events"
	"overcooked-floor/floor-svc/internal/mocks"
	"overcooked-floor/floor-svc/internal/reqctx"
)

type appendLog struct {
	events []domain.SessionEvent
	err    error
}

func (a *appendLog) AppendEvent(_ context.Context, e *domain.SessionEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, *e)
	return nil
}

func TestRecorder_Record(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	recorder := events.NewRecorder(func() time.Time { return now })
	log := &appendLog{}

	ctx := reqctx.WithUserID(reqctx.WithCorrelationID(context.Background(), "corr-1"), "waiter-1")
	event, err := recorder.Record(ctx, log, "s1", domain.EventWaveFired, map[string]any{"wave_number": 2})
	require.NoError(t, err)

	require.Len(t, log.events, 1)
	assert.Equal(t, *event, log.events[0])
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "s1", event.SessionID)
	assert.Equal(t, domain.EventWaveFired, event.Type)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "waiter-1", event.ActorID)
	assert.Equal(t, now, event.CreatedAt)
	assert.JSONEq(t, `{"wave_number":2}`, string(event.Payload))
}

func TestRecorder_RecordErrors(t *testing.T) {
	recorder := events.NewRecorder(nil)

	event, err := recorder.Record(context.Background(), &appendLog{}, "s1", "x", map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
	assert.Nil(t, event)

	event, err = recorder.Record(context.Background(), &appendLog{err: errors.New("disk full")}, "s1", "x", nil)
	assert.ErrorContains(t, err, "disk full")
	assert.Nil(t, event)

	log := &appendLog{}
	event, err = recorder.Record(context.Background(), log, "s1", "x", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, event.CorrelationID)
	assert.Equal(t, json.RawMessage("null"), event.Payload)
}

func TestEmitter_Dispatch(t *testing.T) {
	good := mocks.NewSink(t)
	good.On("Name").Return("good").Maybe()
	good.On("Publish", mock.Anything, mock.AnythingOfType("domain.Notification")).Return(nil).Times(3)

	bad := mocks.NewSink(t)
	bad.On("Name").Return("bad").Maybe()
	bad.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Times(3)

	emitter := events.NewEmitter(8, nil, good, bad)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- emitter.Run(ctx) }()

	for i := 0; i < 3; i++ {
		emitter.Emit(domain.Notification{Type: domain.EventItemsAdded, SessionID: "s1"})
	}

	require.Eventually(t, func() bool {
		stats := emitter.Stats()
		return stats.Delivered == 3 && stats.Failed == 3
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, emitter.Stats().Dropped)
}

func TestEmitter_DropsWhenFull(t *testing.T) {
	emitter := events.NewEmitter(1, nil)

	emitter.Emit(domain.Notification{Type: "a"})
	emitter.Emit(domain.Notification{Type: "b"})
	emitter.Emit(domain.Notification{Type: "c"})

	assert.Equal(t, events.Stats{Dropped: 2}, emitter.Stats())
}

func TestEmitter_DrainsOnShutdown(t *testing.T) {
	sink := mocks.NewSink(t)
	sink.On("Name").Return("sink").Maybe()
	sink.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()

	emitter := events.NewEmitter(4, nil, sink)
	emitter.Emit(domain.Notification{Type: "a"})
	emitter.Emit(domain.Notification{Type: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, emitter.Run(ctx))

	assert.Equal(t, uint64(2), emitter.Stats().Delivered)
}
