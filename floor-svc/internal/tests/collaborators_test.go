package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/mocks"
	"overcooked-floor/floor-svc/internal/reqctx"
	"overcooked-floor/floor-svc/internal/service"
	"overcooked-floor/floor-svc/internal/totals"
)

func TestPanickingNotifierKeepsCommit(t *testing.T) {
	notifier := mocks.NewNotifier(t)
	notifier.On("Emit", mock.Anything).Run(func(mock.Arguments) {
		panic("sink exploded")
	})
	f := newFloor(t, withNotifier(notifier))
	ctx := context.Background()

	session, err := f.sessions.OpenSession(ctx, service.OpenSessionRequest{LocationID: testLocation, TableID: testTable})
	require.NoError(t, err)

	result, err := f.waves.AddItems(ctx, session.ID, []service.NewItem{line("burger", 2)})

	require.NoError(t, err)
	require.Len(t, result.ItemIDs, 1)
	assert.True(t, result.WaveCreated)
	assert.Equal(t, 2, f.store.item(result.ItemIDs[0]).Quantity)
	assert.Len(t, f.store.eventsOf(session.ID, domain.EventItemsAdded), 1)
	assert.Equal(t, "20.00", f.store.session(session.ID).Totals.Subtotal.StringFixed(2))

	// the first notification of each call panics, so the rest of that batch is not attempted
	notifier.AssertNumberOfCalls(t, "Emit", 2)
	notifier.AssertCalled(t, "Emit", mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.EventWaveCreated
	}))
	notifier.AssertNotCalled(t, "Emit", mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.EventItemsAdded
	}))
}

func TestNotificationsCarryCorrelationID(t *testing.T) {
	notifier := mocks.NewNotifier(t)
	notifier.On("Emit", mock.MatchedBy(func(n domain.Notification) bool {
		return n.CorrelationID == "corr-7" && n.SessionID != "" && !n.OccurredAt.IsZero()
	})).Times(3)
	f := newFloor(t, withNotifier(notifier))
	ctx := reqctx.WithCorrelationID(context.Background(), "corr-7")

	session, err := f.sessions.OpenSession(ctx, service.OpenSessionRequest{LocationID: testLocation, TableID: testTable})
	require.NoError(t, err)
	_, err = f.waves.AddItems(ctx, session.ID, []service.NewItem{line("fries", 1)})
	require.NoError(t, err)
}

func TestAddItems_PricingProvider(t *testing.T) {
	tests := []struct {
		name         string
		setupMock    func(*mocks.PricingProvider)
		wantErr      bool
		wantSubtotal string
		wantTotal    string
	}{
		{
			name: "location rates applied",
			setupMock: func(m *mocks.PricingProvider) {
				m.On("Rates", mock.Anything, testLocation).
					Return(totals.Rates{TaxRate: price("0.08"), ServiceRate: price("0.10")}, nil).Once()
			},
			wantSubtotal: "14.50",
			wantTotal:    "17.11",
		},
		{
			name: "rates unavailable",
			setupMock: func(m *mocks.PricingProvider) {
				m.On("Rates", mock.Anything, testLocation).
					Return(totals.Rates{}, errors.New("pricing file unreadable")).Once()
			},
			wantErr:      true,
			wantSubtotal: "0.00",
			wantTotal:    "0.00",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rates := mocks.NewPricingProvider(t)
			testCase.setupMock(rates)
			f := newFloor(t, withPricing(rates))
			session := f.open(t)

			result, err := f.waves.AddItems(context.Background(), session.ID, []service.NewItem{line("burger", 1), line("fries", 1)})

			stored := f.store.session(session.ID).Totals
			assert.Equal(t, testCase.wantSubtotal, stored.Subtotal.StringFixed(2))
			assert.Equal(t, testCase.wantTotal, stored.Total.StringFixed(2))
			if testCase.wantErr {
				require.Error(t, err)
				_, isFailure := domain.AsFailure(err)
				assert.False(t, isFailure)
				assert.Zero(t, f.store.waveCount(session.ID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantTotal, result.Totals.Total.StringFixed(2))
		})
	}
}
