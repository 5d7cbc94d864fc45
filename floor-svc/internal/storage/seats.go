package storage

import (
	"context"

	"overcooked-floor/floor-svc/internal/domain"
)

const seatColumns = `id, session_id, number, COALESCE(label, ''), active, created_at`

func scanSeat(row rowScanner) (*domain.Seat, error) {
	var s domain.Seat
	if err := row.Scan(&s.ID, &s.SessionID, &s.Number, &s.Label, &s.Active, &s.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (t *pgTx) MaxSeatNumber(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM seats WHERE session_id = $1`, sessionID).Scan(&n)
	return n, err
}

func (t *pgTx) InsertSeat(ctx context.Context, s *domain.Seat) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO seats (id, session_id, number, label, active, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`, s.ID, s.SessionID, s.Number, s.Label, s.Active, s.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (t *pgTx) GetSeat(ctx context.Context, seatID string) (*domain.Seat, error) {
	return scanSeat(t.tx.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = $1`, seatID))
}

func (t *pgTx) LockSeat(ctx context.Context, seatID string) (*domain.Seat, error) {
	return scanSeat(t.tx.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = $1 FOR UPDATE`, seatID))
}

func (t *pgTx) FindSeatByNumber(ctx context.Context, sessionID string, number int) (*domain.Seat, error) {
	return scanSeat(t.tx.QueryRowContext(ctx, `
		SELECT `+seatColumns+` FROM seats WHERE session_id = $1 AND number = $2 FOR UPDATE
	`, sessionID, number))
}

// UpdateSeatNumber relies on seats_session_number being DEFERRABLE INITIALLY DEFERRED so two
// seats can swap numbers inside one transaction.
func (t *pgTx) UpdateSeatNumber(ctx context.Context, seatID string, number int) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE seats SET number = $1 WHERE id = $2`, number, seatID)
	return err
}

func (t *pgTx) DeactivateSeat(ctx context.Context, seatID string) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE seats SET active = FALSE WHERE id = $1`, seatID)
	return err
}

func (t *pgTx) DeleteSeat(ctx context.Context, seatID string) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM seats WHERE id = $1`, seatID)
	return err
}

func (t *pgTx) CountSeatItems(ctx context.Context, seatID string) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE seat_id = $1`, seatID).Scan(&n)
	return n, err
}

func (t *pgTx) ListSeats(ctx context.Context, sessionID string) ([]domain.Seat, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE session_id = $1 ORDER BY number`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []domain.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, *s)
	}
	return seats, rows.Err()
}
