package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/rules"
	"overcooked-floor/floor-svc/internal/totals"
)

// ItemController owns the per-item lifecycle: kitchen status, void, refire and pre-fire edits.
type ItemController struct {
	core
}

func NewItemController(d Dependencies) *ItemController {
	return &ItemController{core: newCore(d)}
}

func (c *ItemController) MarkPreparing(ctx context.Context, itemID string) (*ItemResult, error) {
	return c.Transition(ctx, itemID, domain.ItemPreparing)
}

func (c *ItemController) MarkReady(ctx context.Context, itemID string) (*ItemResult, error) {
	return c.Transition(ctx, itemID, domain.ItemReady)
}

func (c *ItemController) MarkServed(ctx context.Context, itemID string) (*ItemResult, error) {
	return c.Transition(ctx, itemID, domain.ItemServed)
}

func (c *ItemController) Transition(ctx context.Context, itemID string, target domain.ItemStatus) (*ItemResult, error) {
	ctx, _ = c.begin(ctx)
	return c.transition(ctx, itemID, "", target)
}

// transition moves one item forward in its own transaction. A non-empty sessionID additionally
// requires the item to belong to that session.
func (c *ItemController) transition(ctx context.Context, itemID, sessionID string, target domain.ItemStatus) (*ItemResult, error) {
	var (
		result *ItemResult
		note   domain.Notification
	)
	err := c.store.WithTx(ctx, func(tx Tx) error {
		item, session, err := c.lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if sessionID != "" && item.SessionID != sessionID {
			return domain.Fail(domain.ReasonItemNotInOrder, "item belongs to a different session").
				With("item_id", item.ID).
				With("session_id", sessionID)
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		if f := rules.CanTransition(item, target); f != nil {
			return f
		}

		from := item.Status
		now := c.now().UTC()
		item.Status = target
		switch target {
		case domain.ItemPreparing:
			item.StartedAt = &now
		case domain.ItemReady:
			item.ReadyAt = &now
		case domain.ItemServed:
			item.ServedAt = &now
		}
		if err := tx.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		payload := map[string]any{
			"item_id": item.ID,
			"wave_id": item.WaveID,
			"from":    from,
			"to":      target,
		}
		if err := c.record(ctx, tx, session.ID, domain.EventItemStatusChanged, payload); err != nil {
			return err
		}

		result = c.itemResult(ctx, item, session)
		note = notification(domain.EventItemStatusChanged, session)
		note.ItemIDs = []string{item.ID}
		note.Data = map[string]any{"wave_id": item.WaveID, "from": from, "to": target}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.emit(ctx, note)
	return result, nil
}

func (c *ItemController) VoidItem(ctx context.Context, itemID, reason string) (*ItemResult, error) {
	ctx, _ = c.begin(ctx)

	var (
		result *ItemResult
		note   domain.Notification
	)
	err := c.store.WithTx(ctx, func(tx Tx) error {
		item, session, err := c.lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		if f := rules.CanVoidItem(item); f != nil {
			return f
		}

		now := c.now().UTC()
		item.VoidedAt = &now
		item.VoidReason = reason
		if err := tx.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if _, err := c.recompute(ctx, tx, session, item.WaveID); err != nil {
			return err
		}

		payload := map[string]any{
			"item_id":       item.ID,
			"wave_id":       item.WaveID,
			"reason":        reason,
			"session_total": session.Totals.Total.StringFixed(2),
		}
		if err := c.record(ctx, tx, session.ID, domain.EventItemVoided, payload); err != nil {
			return err
		}

		result = c.itemResult(ctx, item, session)
		note = notification(domain.EventItemStatusChanged, session)
		note.ItemIDs = []string{item.ID}
		note.Data = map[string]any{"wave_id": item.WaveID, "voided": true, "reason": reason}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("item voided", zap.String("item_id", itemID), zap.String("reason", reason))
	c.emit(ctx, note)
	return result, nil
}

// RefireItem sends a started item back to pending. It is allowed once per fire cycle; firing
// the item's wave again opens a new cycle.
func (c *ItemController) RefireItem(ctx context.Context, itemID, reason string) (*ItemResult, error) {
	ctx, _ = c.begin(ctx)

	var (
		result *ItemResult
		note   domain.Notification
	)
	err := c.store.WithTx(ctx, func(tx Tx) error {
		item, session, err := c.lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		if f := rules.CanRefireItem(item); f != nil {
			return f
		}

		from := item.Status
		now := c.now().UTC()
		item.Status = domain.ItemPending
		item.StartedAt = nil
		item.ReadyAt = nil
		item.ServedAt = nil
		item.RefiredAt = &now
		item.RefireReason = reason
		if err := tx.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		payload := map[string]any{
			"item_id": item.ID,
			"wave_id": item.WaveID,
			"from":    from,
			"reason":  reason,
		}
		if err := c.record(ctx, tx, session.ID, domain.EventItemRefired, payload); err != nil {
			return err
		}

		result = c.itemResult(ctx, item, session)
		note = notification(domain.EventItemRefired, session)
		note.ItemIDs = []string{item.ID}
		note.Data = map[string]any{"wave_id": item.WaveID, "from": from, "reason": reason}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.emit(ctx, note)
	return result, nil
}

func (c *ItemController) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*ItemResult, error) {
	if quantity < 1 {
		return nil, domain.Fail(domain.ReasonInvalidQuantity, "quantity must be at least 1").
			With("item_id", itemID).
			With("quantity", quantity)
	}
	return c.modify(ctx, itemID, "quantity", func(item *domain.Item) (any, any, bool) {
		from := item.Quantity
		item.Quantity = quantity
		item.LineTotal = totals.LineTotal(item.Price, quantity, item.CustomizationsTotal)
		return from, quantity, true
	})
}

func (c *ItemController) UpdateNotes(ctx context.Context, itemID, notes string) (*ItemResult, error) {
	return c.modify(ctx, itemID, "notes", func(item *domain.Item) (any, any, bool) {
		from := item.Notes
		item.Notes = notes
		return from, notes, false
	})
}

// modify applies a pre-fire edit. change reports the old and new values and whether totals
// are affected.
func (c *ItemController) modify(ctx context.Context, itemID, field string, change func(*domain.Item) (any, any, bool)) (*ItemResult, error) {
	ctx, _ = c.begin(ctx)

	var (
		result *ItemResult
		note   domain.Notification
	)
	err := c.store.WithTx(ctx, func(tx Tx) error {
		item, session, err := c.lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		if f := rules.CanModifyItem(item); f != nil {
			return f
		}

		from, to, repriced := change(item)
		if err := tx.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if repriced {
			if _, err := c.recompute(ctx, tx, session, item.WaveID); err != nil {
				return err
			}
		}

		payload := map[string]any{
			"item_id": item.ID,
			"field":   field,
			"from":    from,
			"to":      to,
		}
		if err := c.record(ctx, tx, session.ID, domain.EventItemUpdated, payload); err != nil {
			return err
		}

		result = c.itemResult(ctx, item, session)
		note = notification(domain.EventItemUpdated, session)
		note.ItemIDs = []string{item.ID}
		note.Data = map[string]any{"field": field}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.emit(ctx, note)
	return result, nil
}
