// Package rules answers whether a requested transition may happen. Every check is pure: it
// returns nil or the *domain.Failure the caller should surface.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"overcooked-floor/floor-svc/internal/domain"
)

// predecessor maps a target pipeline status to the only status it may be reached from.
var predecessor = map[domain.ItemStatus]domain.ItemStatus{
	domain.ItemPreparing: domain.ItemPending,
	domain.ItemReady:     domain.ItemPreparing,
	domain.ItemServed:    domain.ItemReady,
}

var wrongPredecessor = map[domain.ItemStatus]domain.Reason{
	domain.ItemPending:   domain.ReasonItemNotPending,
	domain.ItemPreparing: domain.ReasonItemNotPreparing,
	domain.ItemReady:     domain.ReasonItemNotReady,
}

func CanAddItems(session *domain.Session) *domain.Failure {
	if session.Status != domain.SessionOpen {
		return domain.Fail(domain.ReasonSessionNotOpen, "session is not open").
			With("session_id", session.ID).
			With("status", string(session.Status))
	}
	return nil
}

// CanFireWave requires an unfired wave holding at least one live item.
func CanFireWave(wave *domain.Wave, liveItems int) *domain.Failure {
	if wave.FiredAt != nil {
		return domain.Fail(domain.ReasonWaveAlreadyFired, fmt.Sprintf("wave %d was already fired", wave.Number)).
			With("wave_number", wave.Number).
			With("fired_at", *wave.FiredAt)
	}
	if liveItems == 0 {
		return domain.Fail(domain.ReasonNoWaveToFire, fmt.Sprintf("wave %d has no items to fire", wave.Number)).
			With("wave_number", wave.Number)
	}
	return nil
}

// CanModifyItem guards quantity, notes, seat and customization edits.
func CanModifyItem(item *domain.Item) *domain.Failure {
	if item.Voided() {
		return domain.Fail(domain.ReasonItemVoided, "item is voided").With("item_id", item.ID)
	}
	if item.Locked() {
		return domain.Fail(domain.ReasonItemSentToKitchen, "item was already sent to the kitchen").
			With("item_id", item.ID).
			With("sent_to_kitchen_at", *item.SentToKitchenAt)
	}
	return nil
}

func CanVoidItem(item *domain.Item) *domain.Failure {
	if item.Voided() {
		return domain.Fail(domain.ReasonItemAlreadyVoided, "item is already voided").
			With("item_id", item.ID).
			With("voided_at", *item.VoidedAt)
	}
	return nil
}

// CanRefireItem allows one refire per fire cycle, and only for items the kitchen has started.
func CanRefireItem(item *domain.Item) *domain.Failure {
	if item.Voided() {
		return domain.Fail(domain.ReasonItemVoided, "item is voided").With("item_id", item.ID)
	}
	if !item.Locked() {
		return domain.Fail(domain.ReasonItemNotSentToKitchen, "item has not been sent to the kitchen").
			With("item_id", item.ID)
	}
	if item.RefiredAt != nil {
		return domain.Fail(domain.ReasonItemAlreadyRefired, "item was already refired in this fire cycle").
			With("item_id", item.ID).
			With("refired_at", *item.RefiredAt)
	}
	if item.Status == domain.ItemPending {
		return domain.Fail(domain.ReasonItemNotRefirable, "item has not entered preparation").
			With("item_id", item.ID).
			With("status", string(item.Status))
	}
	return nil
}

// CanTransition validates a forward move along pending → preparing → ready → served.
func CanTransition(item *domain.Item, target domain.ItemStatus) *domain.Failure {
	from, ok := predecessor[target]
	if !ok {
		return domain.Fail(domain.ReasonInvalidStatus, fmt.Sprintf("cannot transition an item to %q", target)).
			With("target", string(target))
	}
	if item.Voided() {
		return domain.Fail(domain.ReasonItemVoided, "item is voided").With("item_id", item.ID)
	}
	if !item.Locked() {
		return domain.Fail(domain.ReasonItemNotSentToKitchen, "item has not been sent to the kitchen").
			With("item_id", item.ID)
	}
	if item.Status != from {
		return domain.Fail(wrongPredecessor[from], fmt.Sprintf("item is %s, expected %s", item.Status, from)).
			With("item_id", item.ID).
			With("status", string(item.Status)).
			With("target", string(target))
	}
	return nil
}

// CanAssignSeat checks an item/seat pair. A nil seat means the item becomes shared.
func CanAssignSeat(item *domain.Item, seat *domain.Seat) *domain.Failure {
	if f := CanModifyItem(item); f != nil {
		return f
	}
	if seat == nil {
		return nil
	}
	if seat.SessionID != item.SessionID {
		return domain.Fail(domain.ReasonSeatNotInSession, "seat belongs to a different session").
			With("seat_id", seat.ID).
			With("session_id", item.SessionID)
	}
	if !seat.Active {
		return domain.Fail(domain.ReasonSeatInactive, "seat was removed").With("seat_id", seat.ID)
	}
	return nil
}

// UnfinishedItem is the diagnostic entry reported when a close is blocked by open kitchen work.
type UnfinishedItem struct {
	ItemID string            `json:"item_id"`
	Name   string            `json:"name"`
	Status domain.ItemStatus `json:"status"`
}

// CanCloseSession requires every live item served and no positive balance once paid is applied.
func CanCloseSession(session *domain.Session, items []domain.Item, total, paid decimal.Decimal) *domain.Failure {
	if session.Status != domain.SessionOpen {
		return domain.Fail(domain.ReasonSessionNotOpen, "session is not open").
			With("session_id", session.ID).
			With("status", string(session.Status))
	}

	var unfinished []UnfinishedItem
	for i := range items {
		if items[i].Voided() || items[i].Status == domain.ItemServed {
			continue
		}
		unfinished = append(unfinished, UnfinishedItem{
			ItemID: items[i].ID,
			Name:   items[i].Name,
			Status: items[i].Status,
		})
	}
	if len(unfinished) > 0 {
		return domain.Fail(domain.ReasonUnfinishedItems, fmt.Sprintf("%d items are not served", len(unfinished))).
			With("items", unfinished)
	}

	remaining := total.Sub(paid)
	if remaining.IsPositive() {
		return domain.Fail(domain.ReasonUnpaidBalance, "session has an outstanding balance").
			With("remaining", remaining.StringFixed(2)).
			With("session_total", total.StringFixed(2)).
			With("payments_total", paid.StringFixed(2))
	}
	return nil
}
