package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/rules"
	"overcooked-floor/floor-svc/internal/totals"
)

// maxWaveAttempts bounds how often AddItems re-resolves the open wave after finding it fired.
const maxWaveAttempts = 3

// WaveOrchestrator groups items into waves, fires them to the kitchen and drives bulk status
// changes.
type WaveOrchestrator struct {
	core
	items *ItemController
}

func NewWaveOrchestrator(d Dependencies, items *ItemController) *WaveOrchestrator {
	if items == nil {
		items = NewItemController(d)
	}
	return &WaveOrchestrator{core: newCore(d), items: items}
}

// ensureOpenWave returns the session's unfired wave, creating wave max+1 when there is none.
// A concurrent creator wins through the partial unique index and its wave is re-read.
func (o *WaveOrchestrator) ensureOpenWave(ctx context.Context, tx Tx, session *domain.Session) (*domain.Wave, bool, error) {
	for attempt := 0; attempt < maxWaveAttempts; attempt++ {
		wave, err := tx.FindOpenWave(ctx, session.ID)
		if err == nil {
			return wave, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("find open wave: %w", err)
		}

		last, err := tx.MaxWaveNumber(ctx, session.ID)
		if err != nil {
			return nil, false, fmt.Errorf("max wave number: %w", err)
		}
		wave = &domain.Wave{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Number:    last + 1,
			Status:    domain.WaveOpen,
			CreatedAt: o.now().UTC(),
		}
		inserted, err := tx.InsertWave(ctx, wave)
		if err != nil {
			return nil, false, fmt.Errorf("insert wave: %w", err)
		}
		if inserted {
			return wave, true, nil
		}
	}
	return nil, false, fmt.Errorf("no open wave for session %s after %d attempts", session.ID, maxWaveAttempts)
}

// lockUnfiredWave re-reads the wave under a row lock and moves on to a fresh open wave when it
// was fired in the meantime.
func (o *WaveOrchestrator) lockUnfiredWave(ctx context.Context, tx Tx, session *domain.Session, wave *domain.Wave, created bool) (*domain.Wave, bool, error) {
	for attempt := 0; attempt < maxWaveAttempts; attempt++ {
		locked, err := tx.LockWave(ctx, wave.ID)
		if err != nil {
			return nil, false, fmt.Errorf("lock wave %s: %w", wave.ID, err)
		}
		if locked.FiredAt == nil {
			return locked, created, nil
		}

		var fresh bool
		wave, fresh, err = o.ensureOpenWave(ctx, tx, session)
		if err != nil {
			return nil, false, err
		}
		created = created || fresh
	}
	return nil, false, fmt.Errorf("wave for session %s kept firing during insert", session.ID)
}

func validateNewItems(items []NewItem) error {
	if len(items) == 0 {
		return domain.Fail(domain.ReasonInvalidInput, "no items to add")
	}
	for i, item := range items {
		if item.MenuItemID == "" {
			return domain.Fail(domain.ReasonInvalidInput, "menu item id is required").With("index", i)
		}
		if item.Quantity < 1 {
			return domain.Fail(domain.ReasonInvalidQuantity, "quantity must be at least 1").
				With("index", i).
				With("quantity", item.Quantity)
		}
		for _, c := range item.Customizations {
			if c.Quantity < 1 {
				return domain.Fail(domain.ReasonInvalidQuantity, "customization quantity must be at least 1").
					With("index", i).
					With("option_id", c.OptionID).
					With("quantity", c.Quantity)
			}
		}
	}
	return nil
}

// checkSeats verifies every referenced seat exists in the session and is still active.
func checkSeats(ctx context.Context, tx Tx, session *domain.Session, items []NewItem) error {
	checked := make(map[string]bool)
	for _, item := range items {
		if item.SeatID == nil || checked[*item.SeatID] {
			continue
		}
		seatID := *item.SeatID
		checked[seatID] = true

		seat, err := tx.LockSeat(ctx, seatID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && seat.SessionID != session.ID) {
			return domain.Fail(domain.ReasonSeatNotInSession, "seat does not belong to this session").
				With("seat_id", seatID).
				With("session_id", session.ID)
		}
		if err != nil {
			return fmt.Errorf("lock seat %s: %w", seatID, err)
		}
		if !seat.Active {
			return domain.Fail(domain.ReasonSeatInactive, "seat was removed").With("seat_id", seatID)
		}
	}
	return nil
}

// snapshot builds the item rows from the menu, copying names and prices as they are now.
func (o *WaveOrchestrator) snapshot(ctx context.Context, session *domain.Session, requested []NewItem) ([]domain.Item, error) {
	now := o.now().UTC()
	rows := make([]domain.Item, 0, len(requested))
	for _, req := range requested {
		menuItem, err := o.menu.MenuItem(ctx, req.MenuItemID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Fail(domain.ReasonItemNotFound, "menu item not found").With("menu_item_id", req.MenuItemID)
		}
		if err != nil {
			return nil, fmt.Errorf("load menu item %s: %w", req.MenuItemID, err)
		}
		if menuItem.LocationID != session.LocationID || !menuItem.Available {
			return nil, domain.Fail(domain.ReasonItemNotFound, "menu item is not available at this location").
				With("menu_item_id", req.MenuItemID).
				With("location_id", session.LocationID)
		}

		itemID := uuid.NewString()
		customizations := make([]domain.Customization, 0, len(req.Customizations))
		for _, c := range req.Customizations {
			opt, err := o.menu.MenuOption(ctx, req.MenuItemID, c.OptionID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Fail(domain.ReasonItemNotFound, "option does not belong to the menu item").
					With("menu_item_id", req.MenuItemID).
					With("option_id", c.OptionID)
			}
			if err != nil {
				return nil, fmt.Errorf("load menu option %s: %w", c.OptionID, err)
			}
			customizations = append(customizations, domain.Customization{
				ID:       uuid.NewString(),
				ItemID:   itemID,
				OptionID: opt.ID,
				Name:     opt.Name,
				Price:    opt.Price,
				Quantity: c.Quantity,
			})
		}

		custTotal := totals.CustomizationsTotal(customizations)
		rows = append(rows, domain.Item{
			ID:                  itemID,
			SessionID:           session.ID,
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            req.Quantity,
			SeatID:              req.SeatID,
			CustomizationsTotal: custTotal,
			LineTotal:           totals.LineTotal(menuItem.Price, req.Quantity, custTotal),
			Status:              domain.ItemPending,
			Notes:               req.Notes,
			CreatedAt:           now,
			Customizations:      customizations,
		})
	}
	return rows, nil
}

func (o *WaveOrchestrator) AddItems(ctx context.Context, sessionID string, items []NewItem) (*AddItemsResult, error) {
	if err := validateNewItems(items); err != nil {
		return nil, err
	}
	ctx, correlationID := o.begin(ctx)

	var (
		result *AddItemsResult
		notes  []domain.Notification
	)
	err := o.store.WithTx(ctx, func(tx Tx) error {
		session, err := o.lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		if err := checkSeats(ctx, tx, session, items); err != nil {
			return err
		}
		rows, err := o.snapshot(ctx, session, items)
		if err != nil {
			return err
		}

		wave, created, err := o.ensureOpenWave(ctx, tx, session)
		if err != nil {
			return err
		}
		wave, created, err = o.lockUnfiredWave(ctx, tx, session, wave, created)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(rows))
		quantity := 0
		for i := range rows {
			rows[i].WaveID = wave.ID
			if err := tx.InsertItem(ctx, &rows[i]); err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
			ids = append(ids, rows[i].ID)
			quantity += rows[i].Quantity
		}

		if _, err := o.recompute(ctx, tx, session, wave.ID); err != nil {
			return err
		}

		if created {
			payload := map[string]any{"wave_id": wave.ID, "wave_number": wave.Number}
			if err := o.record(ctx, tx, session.ID, domain.EventWaveCreated, payload); err != nil {
				return err
			}
			n := notification(domain.EventWaveCreated, session)
			n.WaveNumber = wave.Number
			notes = append(notes, n)
		}
		payload := map[string]any{
			"wave_id":        wave.ID,
			"wave_number":    wave.Number,
			"item_ids":       ids,
			"total_quantity": quantity,
		}
		if err := o.record(ctx, tx, session.ID, domain.EventItemsAdded, payload); err != nil {
			return err
		}
		n := notification(domain.EventItemsAdded, session)
		n.WaveNumber = wave.Number
		n.ItemIDs = ids
		n.Data = map[string]any{"total_quantity": quantity}
		notes = append(notes, n)

		result = &AddItemsResult{
			SessionID:     session.ID,
			WaveID:        wave.ID,
			WaveNumber:    wave.Number,
			WaveCreated:   created,
			ItemIDs:       ids,
			TotalQuantity: quantity,
			Totals:        session.Totals,
			CorrelationID: correlationID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.emit(ctx, notes...)
	return result, nil
}

// pickWave resolves the wave to fire along with its live items.
func (o *WaveOrchestrator) pickWave(ctx context.Context, tx Tx, session *domain.Session, number *int) (*domain.Wave, []domain.Item, error) {
	if number != nil {
		wave, err := tx.GetWaveByNumber(ctx, session.ID, *number)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.Fail(domain.ReasonWaveNotFound, fmt.Sprintf("wave %d not found", *number)).
				With("session_id", session.ID).
				With("wave_number", *number)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("get wave %d: %w", *number, err)
		}
		items, err := tx.ListWaveItems(ctx, wave.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list wave items: %w", err)
		}
		return wave, liveItems(items), nil
	}

	waves, err := tx.ListWaves(ctx, session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list waves: %w", err)
	}
	for i := range waves {
		if waves[i].FiredAt != nil {
			continue
		}
		items, err := tx.ListWaveItems(ctx, waves[i].ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list wave items: %w", err)
		}
		if live := liveItems(items); len(live) > 0 {
			return &waves[i], live, nil
		}
	}
	return nil, nil, domain.Fail(domain.ReasonNoWaveToFire, "no unfired wave has items").
		With("session_id", session.ID)
}

func (o *WaveOrchestrator) FireWave(ctx context.Context, sessionID string, req FireWaveRequest) (*FireWaveResult, error) {
	ctx, correlationID := o.begin(ctx)

	var (
		result *FireWaveResult
		note   domain.Notification
	)
	err := o.store.WithTx(ctx, func(tx Tx) error {
		session, err := o.lockOpenSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		wave, live, err := o.pickWave(ctx, tx, session, req.WaveNumber)
		if err != nil {
			return err
		}
		if f := rules.CanFireWave(wave, len(live)); f != nil {
			return f
		}

		firedAt := o.now().UTC()
		err = tx.MarkWaveFired(ctx, wave.ID, firedAt, req.Station)
		if errors.Is(err, domain.ErrConflict) {
			return domain.Fail(domain.ReasonWaveAlreadyFired, fmt.Sprintf("wave %d was already fired", wave.Number)).
				With("wave_number", wave.Number)
		}
		if err != nil {
			return fmt.Errorf("mark wave fired: %w", err)
		}
		ids, err := tx.SendWaveItemsToKitchen(ctx, wave.ID, firedAt)
		if err != nil {
			return fmt.Errorf("send items to kitchen: %w", err)
		}

		payload := map[string]any{
			"wave_id":     wave.ID,
			"wave_number": wave.Number,
			"item_count":  len(ids),
			"item_ids":    ids,
			"station":     req.Station,
		}
		if err := o.record(ctx, tx, session.ID, domain.EventWaveFired, payload); err != nil {
			return err
		}

		result = &FireWaveResult{
			SessionID:     session.ID,
			WaveID:        wave.ID,
			WaveNumber:    wave.Number,
			FiredAt:       firedAt,
			Station:       req.Station,
			ItemCount:     len(ids),
			ItemIDs:       ids,
			CorrelationID: correlationID,
		}
		note = notification(domain.EventWaveFired, session)
		note.WaveNumber = wave.Number
		note.ItemIDs = ids
		note.Data = map[string]any{"item_count": len(ids), "station": req.Station}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.Info("wave fired",
		zap.String("session_id", result.SessionID),
		zap.Int("wave_number", result.WaveNumber),
		zap.Int("items", result.ItemCount),
	)
	o.emit(ctx, note)
	return result, nil
}

// AdvanceWaveStatus moves every live item of the wave to target, one transaction per item.
// Transitions that succeed stay committed even when others fail; the call then returns the
// full result together with a partial_failure.
func (o *WaveOrchestrator) AdvanceWaveStatus(ctx context.Context, sessionID string, waveNumber int, target domain.ItemStatus) (*AdvanceResult, error) {
	if target == domain.ItemPending || !target.Valid() {
		return nil, domain.Fail(domain.ReasonInvalidStatus, fmt.Sprintf("cannot advance a wave to %q", target)).
			With("target", string(target))
	}
	ctx, correlationID := o.begin(ctx)

	var (
		session *domain.Session
		items   []domain.Item
	)
	err := o.store.WithTx(ctx, func(tx Tx) error {
		var err error
		session, err = o.readSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		wave, err := tx.GetWaveByNumber(ctx, session.ID, waveNumber)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail(domain.ReasonWaveNotFound, fmt.Sprintf("wave %d not found", waveNumber)).
				With("session_id", session.ID).
				With("wave_number", waveNumber)
		}
		if err != nil {
			return fmt.Errorf("get wave %d: %w", waveNumber, err)
		}
		items, err = tx.ListWaveItems(ctx, wave.ID)
		if err != nil {
			return fmt.Errorf("list wave items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &AdvanceResult{
		SessionID:     session.ID,
		WaveNumber:    waveNumber,
		Target:        target,
		Succeeded:     []string{},
		Skipped:       []string{},
		Failed:        []ItemFailure{},
		CorrelationID: correlationID,
	}
	for _, item := range liveItems(items) {
		if item.Status == target {
			result.Skipped = append(result.Skipped, item.ID)
			continue
		}
		_, err := o.items.transition(ctx, item.ID, session.ID, target)
		if f, ok := domain.AsFailure(err); ok {
			result.Failed = append(result.Failed, ItemFailure{ItemID: item.ID, Reason: f.Reason, Message: f.Message})
			continue
		}
		if err != nil {
			return result, fmt.Errorf("advance item %s: %w", item.ID, err)
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}

	if len(result.Succeeded)+len(result.Failed) > 0 {
		err := o.store.WithTx(ctx, func(tx Tx) error {
			payload := map[string]any{
				"wave_number": waveNumber,
				"target":      target,
				"succeeded":   result.Succeeded,
				"skipped":     result.Skipped,
				"failed":      result.Failed,
			}
			return o.record(ctx, tx, session.ID, domain.EventWaveStatusAdvanced, payload)
		})
		if err != nil {
			return result, err
		}
		n := notification(domain.EventWaveStatusAdvanced, session)
		n.WaveNumber = waveNumber
		n.ItemIDs = result.Succeeded
		n.Data = map[string]any{"target": target, "failed": len(result.Failed)}
		o.emit(ctx, n)
	}

	if len(result.Failed) > 0 {
		return result, domain.Fail(domain.ReasonPartialFailure,
			fmt.Sprintf("%d of %d items could not move to %s", len(result.Failed), len(result.Failed)+len(result.Succeeded), target)).
			With("succeeded", result.Succeeded).
			With("failed", result.Failed)
	}
	return result, nil
}

func (o *WaveOrchestrator) ListWaves(ctx context.Context, sessionID string) ([]domain.Wave, error) {
	var waves []domain.Wave
	err := o.store.WithTx(ctx, func(tx Tx) error {
		session, err := o.readSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		waves, err = tx.ListWaves(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list waves: %w", err)
		}
		return nil
	})
	return waves, err
}
