package storage

import (
	"context"
	"database/sql"

	"overcooked-floor/floor-svc/internal/domain"
)

const paymentColumns = `id, session_id, wave_id, amount, tip, method, COALESCE(provider_ref, ''), status, created_at`

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		waveID sql.NullString
		status string
	)
	if err := row.Scan(&p.ID, &p.SessionID, &waveID, &p.Amount, &p.Tip, &p.Method, &p.ProviderRef, &status, &p.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	p.WaveID = nullString(waveID)
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}

func (t *pgTx) InsertPayment(ctx context.Context, p *domain.Payment) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO payments (id, session_id, wave_id, amount, tip, method, provider_ref, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
	`, p.ID, p.SessionID, p.WaveID, p.Amount, p.Tip, p.Method, p.ProviderRef, string(p.Status), p.CreatedAt)
	return err
}

func (t *pgTx) LockPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return scanPayment(t.tx.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, paymentID))
}

func (t *pgTx) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE payments SET status = $1 WHERE id = $2`, string(status), paymentID)
	return err
}

func (t *pgTx) ListPayments(ctx context.Context, sessionID string) ([]domain.Payment, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE session_id = $1 ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
