package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/mocks"
	"overcooked-floor/floor-svc/internal/pricing"
	"overcooked-floor/floor-svc/internal/service"
	"overcooked-floor/floor-svc/internal/totals"
)

const (
	testLocation = "loc-1"
	testTable    = "T12"
)

var fixedNow = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

// captureNotifier keeps every emitted notification in order.
type captureNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (c *captureNotifier) Emit(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, n)
}

func (c *captureNotifier) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]string, 0, len(c.notes))
	for _, n := range c.notes {
		types = append(types, n.Type)
	}
	return types
}

func (c *captureNotifier) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubMenu serves a small catalog for testLocation.
func stubMenu(t *testing.T) *mocks.MenuCatalog {
	menu := mocks.NewMenuCatalog(t)
	catalog := []domain.MenuItem{
		{ID: "burger", LocationID: testLocation, Name: "Burger", Price: price("10.00"), Available: true},
		{ID: "fries", LocationID: testLocation, Name: "Fries", Price: price("4.50"), Available: true},
		{ID: "steak", LocationID: testLocation, Name: "Steak", Price: price("20.00"), Available: true},
		{ID: "soup", LocationID: testLocation, Name: "Soup", Price: price("6.00"), Available: false},
		{ID: "pizza", LocationID: "loc-2", Name: "Pizza", Price: price("12.00"), Available: true},
	}
	for i := range catalog {
		menu.On("MenuItem", mock.Anything, catalog[i].ID).Return(&catalog[i], nil).Maybe()
	}
	menu.On("MenuItem", mock.Anything, "ghost").Return(nil, domain.ErrNotFound).Maybe()
	menu.On("MenuOption", mock.Anything, "burger", "cheese").
		Return(&domain.MenuOption{ID: "cheese", MenuItemID: "burger", Name: "Cheese", Price: price("1.50")}, nil).Maybe()
	menu.On("MenuOption", mock.Anything, "burger", "bacon").Return(nil, domain.ErrNotFound).Maybe()
	return menu
}

type floor struct {
	store    *memStore
	notifier *captureNotifier
	sessions *service.SessionService
	waves    *service.WaveOrchestrator
	items    *service.ItemController
	seats    *service.SeatManager
}

type floorOption func(*service.Dependencies)

func withRates(tax, svc string) floorOption {
	return func(d *service.Dependencies) {
		d.Pricing = pricing.Flat(totals.Rates{TaxRate: price(tax), ServiceRate: price(svc)})
	}
}

func withPricing(p service.PricingProvider) floorOption {
	return func(d *service.Dependencies) {
		d.Pricing = p
	}
}

func withNotifier(n service.Notifier) floorOption {
	return func(d *service.Dependencies) {
		d.Notifier = n
	}
}

func withAccess(access service.AccessChecker) floorOption {
	return func(d *service.Dependencies) {
		d.Access = access
	}
}

func newFloor(t *testing.T, opts ...floorOption) *floor {
	f := &floor{store: newMemStore(), notifier: &captureNotifier{}}
	deps := service.Dependencies{
		Store:    f.store,
		Menu:     stubMenu(t),
		Notifier: f.notifier,
		Now:      func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(&deps)
	}
	f.sessions = service.NewSessionService(deps)
	f.items = service.NewItemController(deps)
	f.waves = service.NewWaveOrchestrator(deps, f.items)
	f.seats = service.NewSeatManager(deps)
	return f
}

func (f *floor) open(t *testing.T) *domain.Session {
	t.Helper()
	session, err := f.sessions.OpenSession(context.Background(), service.OpenSessionRequest{
		LocationID: testLocation,
		TableID:    testTable,
		GuestCount: 2,
	})
	require.NoError(t, err)
	return session
}

func (f *floor) add(t *testing.T, sessionID string, items ...service.NewItem) *service.AddItemsResult {
	t.Helper()
	result, err := f.waves.AddItems(context.Background(), sessionID, items)
	require.NoError(t, err)
	return result
}

func (f *floor) fire(t *testing.T, sessionID string) *service.FireWaveResult {
	t.Helper()
	result, err := f.waves.FireWave(context.Background(), sessionID, service.FireWaveRequest{})
	require.NoError(t, err)
	return result
}

// serve walks a fired item through the whole kitchen pipeline.
func (f *floor) serve(t *testing.T, itemID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.items.MarkPreparing(ctx, itemID)
	require.NoError(t, err)
	_, err = f.items.MarkReady(ctx, itemID)
	require.NoError(t, err)
	_, err = f.items.MarkServed(ctx, itemID)
	require.NoError(t, err)
}

func line(menuItemID string, quantity int) service.NewItem {
	return service.NewItem{MenuItemID: menuItemID, Quantity: quantity}
}

func requireReason(t *testing.T, err error, reason domain.Reason) *domain.Failure {
	t.Helper()
	require.Error(t, err)
	f, ok := domain.AsFailure(err)
	require.True(t, ok, "expected a failure, got %v", err)
	require.Equal(t, reason, f.Reason, f.Message)
	return f
}
