package service

import (
	"time"

	"github.com/shopspring/decimal"

	"overcooked-floor/floor-svc/internal/domain"
)

type NewCustomization struct {
	OptionID string `json:"option_id"`
	Quantity int    `json:"quantity"`
}

// NewItem is one line of an add-items request. Name and price come from the menu, never from
// the caller.
type NewItem struct {
	MenuItemID     string             `json:"menu_item_id"`
	Quantity       int                `json:"quantity"`
	SeatID         *string            `json:"seat_id,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	Customizations []NewCustomization `json:"customizations,omitempty"`
}

type AddItemsResult struct {
	SessionID     string        `json:"session_id"`
	WaveID        string        `json:"wave_id"`
	WaveNumber    int           `json:"wave_number"`
	WaveCreated   bool          `json:"wave_created"`
	ItemIDs       []string      `json:"item_ids"`
	TotalQuantity int           `json:"total_quantity"`
	Totals        domain.Totals `json:"session_totals"`
	CorrelationID string        `json:"correlation_id"`
}

// FireWaveRequest selects the wave to fire. A nil WaveNumber picks the lowest unfired wave
// that holds live items.
type FireWaveRequest struct {
	WaveNumber *int   `json:"wave_number,omitempty"`
	Station    string `json:"station,omitempty"`
}

type FireWaveResult struct {
	SessionID     string    `json:"session_id"`
	WaveID        string    `json:"wave_id"`
	WaveNumber    int       `json:"wave_number"`
	FiredAt       time.Time `json:"fired_at"`
	Station       string    `json:"station,omitempty"`
	ItemCount     int       `json:"item_count"`
	ItemIDs       []string  `json:"item_ids"`
	CorrelationID string    `json:"correlation_id"`
}

type ItemFailure struct {
	ItemID  string        `json:"item_id"`
	Reason  domain.Reason `json:"reason"`
	Message string        `json:"message"`
}

type AdvanceResult struct {
	SessionID     string            `json:"session_id"`
	WaveNumber    int               `json:"wave_number"`
	Target        domain.ItemStatus `json:"target"`
	Succeeded     []string          `json:"succeeded"`
	Skipped       []string          `json:"skipped"`
	Failed        []ItemFailure     `json:"failed"`
	CorrelationID string            `json:"correlation_id"`
}

type ItemResult struct {
	Item          domain.Item   `json:"item"`
	SessionTotals domain.Totals `json:"session_totals"`
	CorrelationID string        `json:"correlation_id"`
}

type RemoveSeatResult struct {
	SeatID        string `json:"seat_id"`
	SoftDeleted   bool   `json:"soft_deleted"`
	CorrelationID string `json:"correlation_id"`
}

type OpenSessionRequest struct {
	LocationID string `json:"location_id"`
	TableID    string `json:"table_id"`
	GuestCount int    `json:"guest_count"`
}

// SessionView is the read model of a session with everything hanging off it.
type SessionView struct {
	Session     domain.Session   `json:"session"`
	Waves       []domain.Wave    `json:"waves"`
	Items       []domain.Item    `json:"items"`
	Seats       []domain.Seat    `json:"seats"`
	Payments    []domain.Payment `json:"payments"`
	Paid        decimal.Decimal  `json:"paid"`
	Outstanding decimal.Decimal  `json:"outstanding"`
}

// PaymentRequest describes a payment to record. An empty Status means completed.
type PaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount"`
	Tip         decimal.Decimal      `json:"tip"`
	Method      string               `json:"method"`
	ProviderRef string               `json:"provider_ref,omitempty"`
	WaveID      *string              `json:"wave_id,omitempty"`
	Status      domain.PaymentStatus `json:"status,omitempty"`
}

type PaymentResult struct {
	Payment       domain.Payment  `json:"payment"`
	Paid          decimal.Decimal `json:"paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	CorrelationID string          `json:"correlation_id"`
}

type CloseResult struct {
	SessionID     string          `json:"session_id"`
	ClosedAt      time.Time       `json:"closed_at"`
	Totals        domain.Totals   `json:"totals"`
	PaymentsTotal decimal.Decimal `json:"payments_total"`
	PaymentID     string          `json:"payment_id,omitempty"`
	CorrelationID string          `json:"correlation_id"`
}
