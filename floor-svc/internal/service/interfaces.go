package service

import (
	"context"
	"time"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/totals"
)

// Store runs units of work. fn's writes become visible only if it returns nil.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of reads and writes available inside one transaction. Lock* methods take a row
// lock that is held until the transaction ends. Missing rows are reported as domain.ErrNotFound.
type Tx interface {
	LockSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	FindOpenSessionByTable(ctx context.Context, tableID string) (*domain.Session, error)
	InsertSession(ctx context.Context, session *domain.Session) error
	UpdateSessionTotals(ctx context.Context, sessionID string, t domain.Totals) error
	UpdateGuestCount(ctx context.Context, sessionID string, guests int) error
	CloseSession(ctx context.Context, sessionID string, at time.Time) error

	FindOpenWave(ctx context.Context, sessionID string) (*domain.Wave, error)
	MaxWaveNumber(ctx context.Context, sessionID string) (int, error)
	// InsertWave returns false without error when another open wave already exists for the session.
	InsertWave(ctx context.Context, wave *domain.Wave) (bool, error)
	LockWave(ctx context.Context, waveID string) (*domain.Wave, error)
	GetWaveByNumber(ctx context.Context, sessionID string, number int) (*domain.Wave, error)
	ListWaves(ctx context.Context, sessionID string) ([]domain.Wave, error)
	MarkWaveFired(ctx context.Context, waveID string, at time.Time, station string) error
	UpdateWaveTotals(ctx context.Context, waveID string, t domain.Totals) error
	CompleteWaves(ctx context.Context, sessionID string, at time.Time) error

	InsertItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	LockItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListWaveItems(ctx context.Context, waveID string) ([]domain.Item, error)
	ListSessionItems(ctx context.Context, sessionID string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	SendWaveItemsToKitchen(ctx context.Context, waveID string, at time.Time) ([]string, error)
	CompleteItems(ctx context.Context, sessionID string, at time.Time) error

	MaxSeatNumber(ctx context.Context, sessionID string) (int, error)
	InsertSeat(ctx context.Context, seat *domain.Seat) error
	GetSeat(ctx context.Context, seatID string) (*domain.Seat, error)
	LockSeat(ctx context.Context, seatID string) (*domain.Seat, error)
	FindSeatByNumber(ctx context.Context, sessionID string, number int) (*domain.Seat, error)
	UpdateSeatNumber(ctx context.Context, seatID string, number int) error
	DeactivateSeat(ctx context.Context, seatID string) error
	DeleteSeat(ctx context.Context, seatID string) error
	CountSeatItems(ctx context.Context, seatID string) (int, error)
	ListSeats(ctx context.Context, sessionID string) ([]domain.Seat, error)

	InsertPayment(ctx context.Context, payment *domain.Payment) error
	LockPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error
	ListPayments(ctx context.Context, sessionID string) ([]domain.Payment, error)

	AppendEvent(ctx context.Context, event *domain.SessionEvent) error
}

// MenuCatalog is the read-only source of names and prices snapshotted at add time.
type MenuCatalog interface {
	MenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	MenuOption(ctx context.Context, menuItemID, optionID string) (*domain.MenuOption, error)
}

type AccessChecker interface {
	CanAccessLocation(ctx context.Context, userID, locationID string) (bool, error)
}

type PricingProvider interface {
	Rates(ctx context.Context, locationID string) (totals.Rates, error)
}

// Notifier receives live notifications after commit. Emit must not block.
type Notifier interface {
	Emit(n domain.Notification)
}

type WaveOrchestratorInterface interface {
	AddItems(ctx context.Context, sessionID string, items []NewItem) (*AddItemsResult, error)
	FireWave(ctx context.Context, sessionID string, req FireWaveRequest) (*FireWaveResult, error)
	AdvanceWaveStatus(ctx context.Context, sessionID string, waveNumber int, target domain.ItemStatus) (*AdvanceResult, error)
	ListWaves(ctx context.Context, sessionID string) ([]domain.Wave, error)
}

type ItemControllerInterface interface {
	MarkPreparing(ctx context.Context, itemID string) (*ItemResult, error)
	MarkReady(ctx context.Context, itemID string) (*ItemResult, error)
	MarkServed(ctx context.Context, itemID string) (*ItemResult, error)
	Transition(ctx context.Context, itemID string, target domain.ItemStatus) (*ItemResult, error)
	VoidItem(ctx context.Context, itemID, reason string) (*ItemResult, error)
	RefireItem(ctx context.Context, itemID, reason string) (*ItemResult, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*ItemResult, error)
	UpdateNotes(ctx context.Context, itemID, notes string) (*ItemResult, error)
}

type SeatManagerInterface interface {
	AddSeat(ctx context.Context, sessionID, label string) (*domain.Seat, error)
	RenumberSeat(ctx context.Context, seatID string, number int) (*domain.Seat, error)
	RemoveSeat(ctx context.Context, seatID string) (*RemoveSeatResult, error)
	AssignItemSeat(ctx context.Context, itemID string, seatID *string) (*ItemResult, error)
	ListSeats(ctx context.Context, sessionID string) ([]domain.Seat, error)
}

type SessionServiceInterface interface {
	OpenSession(ctx context.Context, req OpenSessionRequest) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	UpdateGuestCount(ctx context.Context, sessionID string, guests int) (*domain.Session, error)
	RecordPayment(ctx context.Context, sessionID string, req PaymentRequest) (*PaymentResult, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) (*domain.Payment, error)
	CloseSession(ctx context.Context, sessionID string, payment *PaymentRequest) (*CloseResult, error)
}

var (
	_ WaveOrchestratorInterface = (*WaveOrchestrator)(nil)
	_ ItemControllerInterface   = (*ItemController)(nil)
	_ SeatManagerInterface      = (*SeatManager)(nil)
	_ SessionServiceInterface   = (*SessionService)(nil)
)
