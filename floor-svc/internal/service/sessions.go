package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/rules"
	"overcooked-floor/floor-svc/internal/totals"
)

// paymentTransitions lists the statuses a payment may move to from each status. Statuses
// missing from the map are final.
var paymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentPending:   {domain.PaymentCompleted, domain.PaymentFailed},
	domain.PaymentCompleted: {domain.PaymentRefunded},
}

// SessionService opens, reads, settles and closes table sessions.
type SessionService struct {
	core
}

func NewSessionService(d Dependencies) *SessionService {
	return &SessionService{core: newCore(d)}
}

func (s *SessionService) OpenSession(ctx context.Context, req OpenSessionRequest) (*domain.Session, error) {
	req.LocationID = strings.TrimSpace(req.LocationID)
	req.TableID = strings.TrimSpace(req.TableID)
	if req.LocationID == "" || req.TableID == "" {
		return nil, domain.Fail(domain.ReasonInvalidInput, "location and table are required")
	}
	if req.GuestCount < 0 {
		return nil, domain.Fail(domain.ReasonInvalidInput, "guest count cannot be negative").With("guest_count", req.GuestCount)
	}
	ctx, _ = s.begin(ctx)
	if err := s.authorize(ctx, req.LocationID); err != nil {
		return nil, err
	}

	var session *domain.Session
	err := s.store.WithTx(ctx, func(tx Tx) error {
		existing, err := tx.FindOpenSessionByTable(ctx, req.TableID)
		if err == nil {
			return tableBusy(req.TableID, existing.ID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("find open session: %w", err)
		}

		now := s.now().UTC()
		session = &domain.Session{
			ID:         uuid.NewString(),
			LocationID: req.LocationID,
			TableID:    req.TableID,
			Status:     domain.SessionOpen,
			GuestCount: req.GuestCount,
			Totals:     domain.Totals{},
			OpenedAt:   now,
			UpdatedAt:  now,
		}
		err = tx.InsertSession(ctx, session)
		if errors.Is(err, domain.ErrConflict) {
			return tableBusy(req.TableID, "")
		}
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		payload := map[string]any{
			"location_id": session.LocationID,
			"table_id":    session.TableID,
			"guest_count": session.GuestCount,
		}
		return s.record(ctx, tx, session.ID, domain.EventSessionOpened, payload)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("session opened", zap.String("session_id", session.ID), zap.String("table_id", session.TableID))
	n := notification(domain.EventSessionOpened, session)
	n.Data = map[string]any{"guest_count": session.GuestCount}
	s.emit(ctx, n)
	return session, nil
}

func tableBusy(tableID, sessionID string) *domain.Failure {
	f := domain.Fail(domain.ReasonTableHasOpenSession, "table already has an open session").With("table_id", tableID)
	if sessionID != "" {
		f.With("session_id", sessionID)
	}
	return f
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	var view *SessionView
	err := s.store.WithTx(ctx, func(tx Tx) error {
		session, err := s.readSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		waves, err := tx.ListWaves(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list waves: %w", err)
		}
		items, err := tx.ListSessionItems(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		seats, err := tx.ListSeats(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list seats: %w", err)
		}
		payments, err := tx.ListPayments(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}

		paid := totals.Paid(payments)
		view = &SessionView{
			Session:     *session,
			Waves:       waves,
			Items:       items,
			Seats:       seats,
			Payments:    payments,
			Paid:        paid,
			Outstanding: totals.Outstanding(session.Totals.Total, paid),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *SessionService) UpdateGuestCount(ctx context.Context, sessionID string, guests int) (*domain.Session, error) {
	if guests < 0 {
		return nil, domain.Fail(domain.ReasonInvalidInput, "guest count cannot be negative").With("guest_count", guests)
	}
	ctx, _ = s.begin(ctx)

	var session *domain.Session
	err := s.store.WithTx(ctx, func(tx Tx) error {
		var err error
		session, err = s.lockOpenSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		from := session.GuestCount
		if err := tx.UpdateGuestCount(ctx, session.ID, guests); err != nil {
			return fmt.Errorf("update guest count: %w", err)
		}
		session.GuestCount = guests

		payload := map[string]any{"from": from, "to": guests}
		return s.record(ctx, tx, session.ID, domain.EventSessionGuestsUpdated, payload)
	})
	if err != nil {
		return nil, err
	}

	n := notification(domain.EventSessionGuestsUpdated, session)
	n.Data = map[string]any{"guest_count": guests}
	s.emit(ctx, n)
	return session, nil
}

func validatePayment(req *PaymentRequest) error {
	if !req.Amount.IsPositive() {
		return domain.Fail(domain.ReasonInvalidAmount, "payment amount must be positive").
			With("amount", req.Amount.StringFixed(2))
	}
	if req.Tip.IsNegative() {
		return domain.Fail(domain.ReasonInvalidAmount, "tip cannot be negative").
			With("tip", req.Tip.StringFixed(2))
	}
	if strings.TrimSpace(req.Method) == "" {
		return domain.Fail(domain.ReasonInvalidInput, "payment method is required")
	}
	if req.Status == "" {
		req.Status = domain.PaymentCompleted
	}
	if !req.Status.Valid() {
		return domain.Fail(domain.ReasonInvalidStatus, fmt.Sprintf("unknown payment status %q", req.Status))
	}
	return nil
}

// insertPayment stores req against the session. A wave reference must point at one of the
// session's own waves.
func (s *SessionService) insertPayment(ctx context.Context, tx Tx, session *domain.Session, req PaymentRequest) (*domain.Payment, error) {
	if req.WaveID != nil {
		wave, err := tx.LockWave(ctx, *req.WaveID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && wave.SessionID != session.ID) {
			return nil, domain.Fail(domain.ReasonWaveNotFound, "wave not found in this session").
				With("wave_id", *req.WaveID).
				With("session_id", session.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("lock wave %s: %w", *req.WaveID, err)
		}
	}

	payment := &domain.Payment{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		WaveID:      req.WaveID,
		Amount:      req.Amount,
		Tip:         req.Tip,
		Method:      req.Method,
		ProviderRef: req.ProviderRef,
		Status:      req.Status,
		CreatedAt:   s.now().UTC(),
	}
	if err := tx.InsertPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	payload := map[string]any{
		"payment_id": payment.ID,
		"amount":     payment.Amount.StringFixed(2),
		"tip":        payment.Tip.StringFixed(2),
		"method":     payment.Method,
		"status":     payment.Status,
	}
	if err := s.record(ctx, tx, session.ID, domain.EventPaymentRecorded, payload); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *SessionService) RecordPayment(ctx context.Context, sessionID string, req PaymentRequest) (*PaymentResult, error) {
	if err := validatePayment(&req); err != nil {
		return nil, err
	}
	ctx, correlationID := s.begin(ctx)

	var (
		result *PaymentResult
		note   domain.Notification
	)
	err := s.store.WithTx(ctx, func(tx Tx) error {
		session, err := s.lockOpenSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if _, err := s.recompute(ctx, tx, session); err != nil {
			return err
		}
		payment, err := s.insertPayment(ctx, tx, session, req)
		if err != nil {
			return err
		}
		payments, err := tx.ListPayments(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}

		paid := totals.Paid(payments)
		result = &PaymentResult{
			Payment:       *payment,
			Paid:          paid,
			Outstanding:   totals.Outstanding(session.Totals.Total, paid),
			CorrelationID: correlationID,
		}
		note = notification(domain.EventPaymentRecorded, session)
		note.Data = map[string]any{
			"payment_id":  payment.ID,
			"status":      payment.Status,
			"outstanding": result.Outstanding.StringFixed(2),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, note)
	return result, nil
}

// UpdatePaymentStatus is the only way to change a recorded payment. Refunds are allowed after
// the session closed.
func (s *SessionService) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) (*domain.Payment, error) {
	if !status.Valid() {
		return nil, domain.Fail(domain.ReasonInvalidStatus, fmt.Sprintf("unknown payment status %q", status))
	}
	ctx, _ = s.begin(ctx)

	var (
		payment *domain.Payment
		note    domain.Notification
	)
	err := s.store.WithTx(ctx, func(tx Tx) error {
		var err error
		payment, err = tx.LockPayment(ctx, paymentID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail(domain.ReasonPaymentNotFound, "payment not found").With("payment_id", paymentID)
		}
		if err != nil {
			return fmt.Errorf("lock payment %s: %w", paymentID, err)
		}
		session, err := s.readSession(ctx, tx, payment.SessionID)
		if err != nil {
			return err
		}
		if !paymentCanMove(payment.Status, status) {
			return domain.Fail(domain.ReasonPaymentStatusFinal,
				fmt.Sprintf("payment cannot move from %s to %s", payment.Status, status)).
				With("payment_id", payment.ID).
				With("status", string(payment.Status)).
				With("target", string(status))
		}

		from := payment.Status
		if err := tx.UpdatePaymentStatus(ctx, payment.ID, status); err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		payment.Status = status

		payload := map[string]any{"payment_id": payment.ID, "from": from, "to": status}
		if err := s.record(ctx, tx, session.ID, domain.EventPaymentStatusChanged, payload); err != nil {
			return err
		}
		note = notification(domain.EventPaymentStatusChanged, session)
		note.Data = payload
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, note)
	return payment, nil
}

func paymentCanMove(from, to domain.PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CloseSession settles and closes the session in one transaction. An optional payment is
// counted towards the balance and stored only if the close succeeds.
func (s *SessionService) CloseSession(ctx context.Context, sessionID string, payment *PaymentRequest) (*CloseResult, error) {
	if payment != nil {
		if err := validatePayment(payment); err != nil {
			return nil, err
		}
	}
	ctx, correlationID := s.begin(ctx)

	var (
		result *CloseResult
		note   domain.Notification
	)
	err := s.store.WithTx(ctx, func(tx Tx) error {
		session, err := s.lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}
		items, err := s.recompute(ctx, tx, session)
		if err != nil {
			return err
		}
		payments, err := tx.ListPayments(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}

		paid := totals.Paid(payments)
		if payment != nil && payment.Status == domain.PaymentCompleted {
			paid = paid.Add(payment.Amount)
		}
		if f := rules.CanCloseSession(session, items, session.Totals.Total, paid); f != nil {
			return f
		}

		var paymentID string
		if payment != nil {
			stored, err := s.insertPayment(ctx, tx, session, *payment)
			if err != nil {
				return err
			}
			paymentID = stored.ID
		}

		closedAt := s.now().UTC()
		if err := tx.CloseSession(ctx, session.ID, closedAt); err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		if err := tx.CompleteWaves(ctx, session.ID, closedAt); err != nil {
			return fmt.Errorf("complete waves: %w", err)
		}
		if err := tx.CompleteItems(ctx, session.ID, closedAt); err != nil {
			return fmt.Errorf("complete items: %w", err)
		}

		payload := map[string]any{
			"subtotal":       session.Totals.Subtotal.StringFixed(2),
			"tax":            session.Totals.Tax.StringFixed(2),
			"service":        session.Totals.Service.StringFixed(2),
			"total":          session.Totals.Total.StringFixed(2),
			"payments_total": paid.StringFixed(2),
		}
		if paymentID != "" {
			payload["payment_id"] = paymentID
		}
		if err := s.record(ctx, tx, session.ID, domain.EventSessionClosed, payload); err != nil {
			return err
		}

		result = &CloseResult{
			SessionID:     session.ID,
			ClosedAt:      closedAt,
			Totals:        session.Totals,
			PaymentsTotal: paid,
			PaymentID:     paymentID,
			CorrelationID: correlationID,
		}
		note = notification(domain.EventSessionClosed, session)
		note.Data = map[string]any{"total": session.Totals.Total.StringFixed(2)}
		return nil
	})
	if err != nil {
		if f, ok := domain.AsFailure(err); ok {
			s.log.Info("session close rejected", zap.String("session_id", sessionID), zap.String("reason", string(f.Reason)))
		}
		return nil, err
	}

	s.log.Info("session closed",
		zap.String("session_id", result.SessionID),
		zap.String("total", result.Totals.Total.StringFixed(2)),
	)
	s.emit(ctx, note)
	return result, nil
}
