package domain

import "time"

// Event types shared by the audit log and the live notification channel.
const (
	EventSessionOpened        = "session.opened"
	EventSessionGuestsUpdated = "session.guests_updated"
	EventSessionClosed        = "session.closed"
	EventItemsAdded           = "items_added"
	EventWaveCreated          = "wave.created"
	EventWaveFired            = "wave.fired"
	EventWaveStatusAdvanced   = "wave.status_advanced"
	EventItemStatusChanged    = "item.status_changed"
	EventItemVoided           = "item.voided"
	EventItemRefired          = "item.refired"
	EventItemUpdated          = "item.updated"
	EventItemSeatAssigned     = "item.seat_assigned"
	EventSeatAdded            = "seat.added"
	EventSeatRenumbered       = "seat.renumbered"
	EventSeatRemoved          = "seat.removed"
	EventPaymentRecorded      = "payment.recorded"
	EventPaymentStatusChanged = "payment.status_changed"
)

// Notification is the minimal, fire-and-forget payload pushed to dashboards and kitchen displays.
type Notification struct {
	Type          string         `json:"type"`
	SessionID     string         `json:"session_id"`
	LocationID    string         `json:"location_id"`
	TableID       string         `json:"table_id,omitempty"`
	WaveNumber    int            `json:"wave_number,omitempty"`
	ItemIDs       []string       `json:"item_ids,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// MenuUpdate is consumed from the menu service's topic; it invalidates cached catalog entries.
type MenuUpdate struct {
	Type       string    `json:"type"`
	MenuItemID string    `json:"menu_item_id"`
	LocationID string    `json:"location_id"`
	Timestamp  time.Time `json:"timestamp"`
}
