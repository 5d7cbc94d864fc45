package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/service"
)

var tracer = otel.Tracer("overcooked-floor/floor-svc/storage")

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var _ service.Store = (*PostgresRepository)(nil)

// WithTx runs fn inside a single transaction. The transaction is committed only when fn returns
// nil; any error or panic rolls it back, so no partial write is ever visible.
func (r *PostgresRepository) WithTx(ctx context.Context, fn func(tx service.Tx) error) error {
	ctx, span := tracer.Start(ctx, "storage.WithTx")
	defer span.End()

	sqlTx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin")
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&pgTx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		if f, ok := domain.AsFailure(err); ok {
			span.SetAttributes(attribute.String("floor.failure_reason", string(f.Reason)))
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, "unit of work failed")
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type pgTx struct {
	tx *sql.Tx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

const sessionColumns = `id, location_id, table_id, status, guest_count, subtotal, tax, service, total, opened_at, closed_at, updated_at`

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s        domain.Session
		status   string
		closedAt sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.LocationID, &s.TableID, &status, &s.GuestCount,
		&s.Totals.Subtotal, &s.Totals.Tax, &s.Totals.Service, &s.Totals.Total,
		&s.OpenedAt, &closedAt, &s.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	s.Status = domain.SessionStatus(status)
	s.ClosedAt = nullTime(closedAt)
	return &s, nil
}

func (t *pgTx) LockSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1 FOR UPDATE`, sessionID)
	return scanSession(row)
}

func (t *pgTx) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, sessionID)
	return scanSession(row)
}

func (t *pgTx) FindOpenSessionByTable(ctx context.Context, tableID string) (*domain.Session, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE table_id = $1 AND status = 'open'`, tableID)
	return scanSession(row)
}

// InsertSession reports domain.ErrConflict when the table already has an open session.
func (t *pgTx) InsertSession(ctx context.Context, s *domain.Session) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO sessions (id, location_id, table_id, status, guest_count, subtotal, tax, service, total, opened_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, $6, $6)
	`, s.ID, s.LocationID, s.TableID, string(s.Status), s.GuestCount, s.OpenedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (t *pgTx) UpdateSessionTotals(ctx context.Context, sessionID string, totals domain.Totals) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE sessions
		SET subtotal = $1, tax = $2, service = $3, total = $4, updated_at = NOW()
		WHERE id = $5
	`, totals.Subtotal, totals.Tax, totals.Service, totals.Total, sessionID)
	return err
}

func (t *pgTx) UpdateGuestCount(ctx context.Context, sessionID string, guests int) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE sessions SET guest_count = $1, updated_at = NOW() WHERE id = $2`, guests, sessionID)
	return err
}

func (t *pgTx) CloseSession(ctx context.Context, sessionID string, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE sessions SET status = 'closed', closed_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'open'
	`, at, sessionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *pgTx) AppendEvent(ctx context.Context, e *domain.SessionEvent) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO session_events (id, session_id, type, payload, correlation_id, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.SessionID, e.Type, []byte(e.Payload), e.CorrelationID, e.ActorID, e.CreatedAt)
	return err
}
