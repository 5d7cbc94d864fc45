package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"overcooked-floor/floor-svc/internal/domain"
)

const itemColumns = `id, wave_id, session_id, menu_item_id, name, price, quantity, seat_id,
	customizations_total, line_total, status, COALESCE(notes, ''),
	sent_to_kitchen_at, started_at, ready_at, served_at,
	voided_at, COALESCE(void_reason, ''), refired_at, COALESCE(refire_reason, ''),
	completed_at, created_at`

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		it                                   domain.Item
		status                               string
		seatID                               sql.NullString
		sent, started, ready, served, voided sql.NullTime
		refired, completed                   sql.NullTime
	)
	if err := row.Scan(&it.ID, &it.WaveID, &it.SessionID, &it.MenuItemID, &it.Name, &it.Price, &it.Quantity, &seatID,
		&it.CustomizationsTotal, &it.LineTotal, &status, &it.Notes,
		&sent, &started, &ready, &served,
		&voided, &it.VoidReason, &refired, &it.RefireReason,
		&completed, &it.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	it.Status = domain.ItemStatus(status)
	it.SeatID = nullString(seatID)
	it.SentToKitchenAt = nullTime(sent)
	it.StartedAt = nullTime(started)
	it.ReadyAt = nullTime(ready)
	it.ServedAt = nullTime(served)
	it.VoidedAt = nullTime(voided)
	it.RefiredAt = nullTime(refired)
	it.CompletedAt = nullTime(completed)
	return &it, nil
}

// InsertItem writes the item row and its customization rows.
func (t *pgTx) InsertItem(ctx context.Context, it *domain.Item) error {
	if _, err := t.tx.ExecContext(ctx, `
		INSERT INTO items (id, wave_id, session_id, menu_item_id, name, price, quantity, seat_id,
			customizations_total, line_total, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13)
	`, it.ID, it.WaveID, it.SessionID, it.MenuItemID, it.Name, it.Price, it.Quantity, it.SeatID,
		it.CustomizationsTotal, it.LineTotal, string(it.Status), it.Notes, it.CreatedAt); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	for _, c := range it.Customizations {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO item_customizations (id, item_id, option_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.ID, it.ID, c.OptionID, c.Name, c.Price, c.Quantity); err != nil {
			return fmt.Errorf("insert customization: %w", err)
		}
	}
	return nil
}

func (t *pgTx) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID)
	return scanItem(row)
}

func (t *pgTx) LockItem(ctx context.Context, itemID string) (*domain.Item, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, itemID)
	it, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	items := []domain.Item{*it}
	if err := t.attachCustomizations(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (t *pgTx) ListWaveItems(ctx context.Context, waveID string) ([]domain.Item, error) {
	return t.listItems(ctx, `SELECT `+itemColumns+` FROM items WHERE wave_id = $1 ORDER BY created_at, id`, waveID)
}

func (t *pgTx) ListSessionItems(ctx context.Context, sessionID string) ([]domain.Item, error) {
	return t.listItems(ctx, `SELECT `+itemColumns+` FROM items WHERE session_id = $1 ORDER BY created_at, id`, sessionID)
}

func (t *pgTx) listItems(ctx context.Context, query string, arg string) ([]domain.Item, error) {
	rows, err := t.tx.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := t.attachCustomizations(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t *pgTx) attachCustomizations(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	index := make(map[string]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
	}

	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, item_id, option_id, name, price, quantity
		FROM item_customizations
		WHERE item_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load customizations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Customization
		if err := rows.Scan(&c.ID, &c.ItemID, &c.OptionID, &c.Name, &c.Price, &c.Quantity); err != nil {
			return err
		}
		if i, ok := index[c.ItemID]; ok {
			items[i].Customizations = append(items[i].Customizations, c)
		}
	}
	return rows.Err()
}

// UpdateItem persists every mutable column of it. Snapshot columns (name, price, menu item) are
// never written after insert.
func (t *pgTx) UpdateItem(ctx context.Context, it *domain.Item) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE items SET
			quantity = $1, seat_id = $2, line_total = $3, status = $4, notes = NULLIF($5, ''),
			started_at = $6, ready_at = $7, served_at = $8,
			voided_at = $9, void_reason = NULLIF($10, ''), refired_at = $11, refire_reason = NULLIF($12, '')
		WHERE id = $13
	`, it.Quantity, it.SeatID, it.LineTotal, string(it.Status), it.Notes,
		it.StartedAt, it.ReadyAt, it.ServedAt,
		it.VoidedAt, it.VoidReason, it.RefiredAt, it.RefireReason, it.ID)
	return err
}

// SendWaveItemsToKitchen stamps every live item of the wave and starts a fresh fire cycle for it.
func (t *pgTx) SendWaveItemsToKitchen(ctx context.Context, waveID string, at time.Time) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `
		UPDATE items SET sent_to_kitchen_at = $1, refired_at = NULL
		WHERE wave_id = $2 AND voided_at IS NULL
		RETURNING id
	`, at, waveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (t *pgTx) CompleteItems(ctx context.Context, sessionID string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE items SET completed_at = $1 WHERE session_id = $2 AND completed_at IS NULL`, at, sessionID)
	return err
}
