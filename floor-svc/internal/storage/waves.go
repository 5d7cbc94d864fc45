package storage

import (
	"context"
	"database/sql"
	"time"

	"overcooked-floor/floor-svc/internal/domain"
)

const waveColumns = `id, session_id, number, status, fired_at, COALESCE(station, ''), subtotal, tax, service, total, created_at`

func scanWave(row rowScanner) (*domain.Wave, error) {
	var (
		w       domain.Wave
		status  string
		firedAt sql.NullTime
	)
	if err := row.Scan(&w.ID, &w.SessionID, &w.Number, &status, &firedAt, &w.Station,
		&w.Totals.Subtotal, &w.Totals.Tax, &w.Totals.Service, &w.Totals.Total, &w.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	w.Status = domain.WaveStatus(status)
	w.FiredAt = nullTime(firedAt)
	return &w, nil
}

func (t *pgTx) FindOpenWave(ctx context.Context, sessionID string) (*domain.Wave, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+waveColumns+` FROM waves
		WHERE session_id = $1 AND fired_at IS NULL
		FOR UPDATE
	`, sessionID)
	return scanWave(row)
}

func (t *pgTx) MaxWaveNumber(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM waves WHERE session_id = $1`, sessionID).Scan(&n)
	return n, err
}

// InsertWave relies on the partial unique index waves_one_open_per_session: when a concurrent
// transaction already created the open wave, nothing is inserted and false is returned.
func (t *pgTx) InsertWave(ctx context.Context, w *domain.Wave) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO waves (id, session_id, number, status, station, subtotal, tax, service, total, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 0, 0, 0, 0, $6)
		ON CONFLICT (session_id) WHERE fired_at IS NULL DO NOTHING
	`, w.ID, w.SessionID, w.Number, string(w.Status), w.Station, w.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *pgTx) LockWave(ctx context.Context, waveID string) (*domain.Wave, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+waveColumns+` FROM waves WHERE id = $1 FOR UPDATE`, waveID)
	return scanWave(row)
}

func (t *pgTx) GetWaveByNumber(ctx context.Context, sessionID string, number int) (*domain.Wave, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+waveColumns+` FROM waves WHERE session_id = $1 AND number = $2 FOR UPDATE`, sessionID, number)
	return scanWave(row)
}

func (t *pgTx) ListWaves(ctx context.Context, sessionID string) ([]domain.Wave, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+waveColumns+` FROM waves WHERE session_id = $1 ORDER BY number`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waves []domain.Wave
	for rows.Next() {
		w, err := scanWave(rows)
		if err != nil {
			return nil, err
		}
		waves = append(waves, *w)
	}
	return waves, rows.Err()
}

func (t *pgTx) MarkWaveFired(ctx context.Context, waveID string, at time.Time, station string) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE waves SET fired_at = $1, status = 'fired', station = COALESCE(NULLIF($2, ''), station)
		WHERE id = $3 AND fired_at IS NULL
	`, at, station, waveID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (t *pgTx) UpdateWaveTotals(ctx context.Context, waveID string, totals domain.Totals) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE waves SET subtotal = $1, tax = $2, service = $3, total = $4 WHERE id = $5
	`, totals.Subtotal, totals.Tax, totals.Service, totals.Total, waveID)
	return err
}

func (t *pgTx) CompleteWaves(ctx context.Context, sessionID string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE waves SET status = 'completed', fired_at = COALESCE(fired_at, $1)
		WHERE session_id = $2
	`, at, sessionID)
	return err
}
