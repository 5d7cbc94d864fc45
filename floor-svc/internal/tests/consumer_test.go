package tests

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/mocks"
	"overcooked-floor/floor-svc/internal/service"
)

func TestMenuConsumer_ProcessUpdate(t *testing.T) {
	tests := []struct {
		name      string
		update    domain.MenuUpdate
		setupMock func(*mocks.MenuCacheInvalidator)
		wantErr   bool
	}{
		{
			name:   "price change",
			update: domain.MenuUpdate{Type: "menu_item.updated", MenuItemID: "burger"},
			setupMock: func(m *mocks.MenuCacheInvalidator) {
				m.On("Invalidate", mock.Anything, "burger").Return(nil).Once()
			},
		},
		{
			name:      "missing menu item id",
			update:    domain.MenuUpdate{Type: "menu_item.updated"},
			setupMock: func(m *mocks.MenuCacheInvalidator) {},
			wantErr:   true,
		},
		{
			name:   "redis error",
			update: domain.MenuUpdate{Type: "menu_item.deleted", MenuItemID: "fries"},
			setupMock: func(m *mocks.MenuCacheInvalidator) {
				m.On("Invalidate", mock.Anything, "fries").Return(errors.New("redis down")).Once()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cache := mocks.NewMenuCacheInvalidator(t)
			testCase.setupMock(cache)
			consumer := service.NewMenuConsumer(nil, cache, nil)

			err := consumer.ProcessUpdate(context.Background(), testCase.update)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMenuConsumer_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMessageReader(t)
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Value: []byte(`{"type":"menu_item.updated","menu_item_id":"burger"}`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Value: []byte(`not json`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Key: []byte("fries"), Value: []byte(`{"type":"menu_item.deleted"}`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{}, errors.New("broker unreachable")).Once()
	reader.On("ReadMessage", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()

	cache := mocks.NewMenuCacheInvalidator(t)
	cache.On("Invalidate", mock.Anything, "burger").Return(nil).Once()
	cache.On("Invalidate", mock.Anything, "fries").Return(errors.New("redis down")).Once()

	consumer := service.NewMenuConsumer(reader, cache, nil)
	consumer.RetryDelay = time.Millisecond

	require.NoError(t, consumer.Start(ctx))
}

func TestMenuConsumer_StartStopsReading(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(reader *mocks.MessageReader, cancel context.CancelFunc)
	}{
		{
			name: "reader closed",
			setupMock: func(reader *mocks.MessageReader, cancel context.CancelFunc) {
				reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, io.EOF).Once()
			},
		},
		{
			name: "cancelled while waiting to retry",
			setupMock: func(reader *mocks.MessageReader, cancel context.CancelFunc) {
				reader.On("ReadMessage", mock.Anything).
					Run(func(mock.Arguments) {
						time.AfterFunc(20*time.Millisecond, cancel)
					}).
					Return(kafka.Message{}, errors.New("broker unreachable")).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			reader := mocks.NewMessageReader(t)
			testCase.setupMock(reader, cancel)
			consumer := service.NewMenuConsumer(reader, mocks.NewMenuCacheInvalidator(t), nil)
			consumer.RetryDelay = time.Hour

			done := make(chan error, 1)
			go func() { done <- consumer.Start(ctx) }()

			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("consumer did not stop")
			}
			reader.AssertNumberOfCalls(t, "ReadMessage", 1)
		})
	}
}

func TestPayAtTableQR(t *testing.T) {
	qr := service.PayAtTableQR{BaseURL: "https://pay.example.com/", Size: 128}

	assert.Equal(t, "https://pay.example.com/pay?session_id=s1", qr.Link("s1"))

	raw, err := qr.Generate("s1")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}
