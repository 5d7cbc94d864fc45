package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

type WaveStatus string

const (
	WaveOpen      WaveStatus = "open"
	WaveFired     WaveStatus = "fired"
	WaveCompleted WaveStatus = "completed"
)

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemServed    ItemStatus = "served"
)

// Valid reports whether s is one of the four pipeline statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPreparing, ItemReady, ItemServed:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Service  decimal.Decimal `json:"service"`
	Total    decimal.Decimal `json:"total"`
}

type Session struct {
	ID         string        `json:"id"`
	LocationID string        `json:"location_id"`
	TableID    string        `json:"table_id"`
	Status     SessionStatus `json:"status"`
	GuestCount int           `json:"guest_count"`
	Totals     Totals        `json:"totals"`
	OpenedAt   time.Time     `json:"opened_at"`
	ClosedAt   *time.Time    `json:"closed_at,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Wave is one course of a session; the kitchen receives it as a unit when it is fired.
type Wave struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Number    int        `json:"number"`
	Status    WaveStatus `json:"status"`
	FiredAt   *time.Time `json:"fired_at,omitempty"`
	Station   string     `json:"station,omitempty"`
	Totals    Totals     `json:"totals"`
	CreatedAt time.Time  `json:"created_at"`
}

type Item struct {
	ID                  string          `json:"id"`
	WaveID              string          `json:"wave_id"`
	SessionID           string          `json:"session_id"`
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SeatID              *string         `json:"seat_id,omitempty"`
	CustomizationsTotal decimal.Decimal `json:"customizations_total"`
	LineTotal           decimal.Decimal `json:"line_total"`
	Status              ItemStatus      `json:"status"`
	Notes               string          `json:"notes,omitempty"`
	SentToKitchenAt     *time.Time      `json:"sent_to_kitchen_at,omitempty"`
	StartedAt           *time.Time      `json:"started_at,omitempty"`
	ReadyAt             *time.Time      `json:"ready_at,omitempty"`
	ServedAt            *time.Time      `json:"served_at,omitempty"`
	VoidedAt            *time.Time      `json:"voided_at,omitempty"`
	VoidReason          string          `json:"void_reason,omitempty"`
	RefiredAt           *time.Time      `json:"refired_at,omitempty"`
	RefireReason        string          `json:"refire_reason,omitempty"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	Customizations      []Customization `json:"customizations,omitempty"`
}

func (i *Item) Voided() bool { return i.VoidedAt != nil }

// Locked reports whether the item has been sent to the kitchen and can no longer be edited.
func (i *Item) Locked() bool { return i.SentToKitchenAt != nil }

type Customization struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	OptionID string          `json:"option_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Seat struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Number    int       `json:"number"`
	Label     string    `json:"label,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Payment struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	WaveID      *string         `json:"wave_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Tip         decimal.Decimal `json:"tip"`
	Method      string          `json:"method"`
	ProviderRef string          `json:"provider_ref,omitempty"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SessionEvent is an append-only audit record. It is never updated or deleted.
type SessionEvent struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	Type          string          `json:"type"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlation_id"`
	ActorID       string          `json:"actor_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type MenuItem struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Available  bool            `json:"available"`
}

type MenuOption struct {
	ID         string          `json:"id"`
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
}
