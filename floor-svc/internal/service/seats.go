package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/rules"
)

type SeatManager struct {
	core
}

func NewSeatManager(d Dependencies) *SeatManager {
	return &SeatManager{core: newCore(d)}
}

func seatNotFound(seatID string) *domain.Failure {
	return domain.Fail(domain.ReasonSeatNotFound, "seat not found").With("seat_id", seatID)
}

// AddSeat appends a seat numbered one past the highest number ever used in the session.
func (m *SeatManager) AddSeat(ctx context.Context, sessionID, label string) (*domain.Seat, error) {
	ctx, _ = m.begin(ctx)

	var (
		seat *domain.Seat
		note domain.Notification
	)
	err := m.store.WithTx(ctx, func(tx Tx) error {
		session, err := m.lockOpenSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		last, err := tx.MaxSeatNumber(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("max seat number: %w", err)
		}

		seat = &domain.Seat{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Number:    last + 1,
			Label:     label,
			Active:    true,
			CreatedAt: m.now().UTC(),
		}
		if err := tx.InsertSeat(ctx, seat); err != nil {
			return fmt.Errorf("insert seat: %w", err)
		}

		payload := map[string]any{"seat_id": seat.ID, "number": seat.Number, "label": label}
		if err := m.record(ctx, tx, session.ID, domain.EventSeatAdded, payload); err != nil {
			return err
		}
		note = notification(domain.EventSeatAdded, session)
		note.Data = map[string]any{"seat_id": seat.ID, "number": seat.Number}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.emit(ctx, note)
	return seat, nil
}

// lockSeat locks the seat's session before the seat itself.
func (m *SeatManager) lockSeat(ctx context.Context, tx Tx, seatID string) (*domain.Seat, *domain.Session, error) {
	peek, err := tx.GetSeat(ctx, seatID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, seatNotFound(seatID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get seat %s: %w", seatID, err)
	}
	session, err := m.lockOpenSession(ctx, tx, peek.SessionID)
	if err != nil {
		return nil, nil, err
	}
	seat, err := tx.LockSeat(ctx, seatID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, seatNotFound(seatID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lock seat %s: %w", seatID, err)
	}
	return seat, session, nil
}

// RenumberSeat gives the seat a new number. A seat already holding that number in the session
// takes the old number in exchange.
func (m *SeatManager) RenumberSeat(ctx context.Context, seatID string, number int) (*domain.Seat, error) {
	if number < 1 {
		return nil, domain.Fail(domain.ReasonInvalidInput, "seat number must be at least 1").With("number", number)
	}
	ctx, _ = m.begin(ctx)

	var (
		seat *domain.Seat
		note domain.Notification
		noop bool
	)
	err := m.store.WithTx(ctx, func(tx Tx) error {
		var (
			session *domain.Session
			err     error
		)
		seat, session, err = m.lockSeat(ctx, tx, seatID)
		if err != nil {
			return err
		}
		if seat.Number == number {
			noop = true
			return nil
		}

		from := seat.Number
		var swappedWith string
		other, err := tx.FindSeatByNumber(ctx, session.ID, number)
		switch {
		case err == nil:
			if err := tx.UpdateSeatNumber(ctx, other.ID, from); err != nil {
				return fmt.Errorf("renumber seat %s: %w", other.ID, err)
			}
			swappedWith = other.ID
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("find seat %d: %w", number, err)
		}
		if err := tx.UpdateSeatNumber(ctx, seat.ID, number); err != nil {
			return fmt.Errorf("renumber seat %s: %w", seat.ID, err)
		}
		seat.Number = number

		payload := map[string]any{"seat_id": seat.ID, "from": from, "to": number}
		if swappedWith != "" {
			payload["swapped_with"] = swappedWith
		}
		if err := m.record(ctx, tx, session.ID, domain.EventSeatRenumbered, payload); err != nil {
			return err
		}
		note = notification(domain.EventSeatRenumbered, session)
		note.Data = payload
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !noop {
		m.emit(ctx, note)
	}
	return seat, nil
}

// RemoveSeat deactivates a seat that items still reference and deletes it otherwise.
func (m *SeatManager) RemoveSeat(ctx context.Context, seatID string) (*RemoveSeatResult, error) {
	ctx, correlationID := m.begin(ctx)

	var (
		result *RemoveSeatResult
		note   domain.Notification
	)
	err := m.store.WithTx(ctx, func(tx Tx) error {
		seat, session, err := m.lockSeat(ctx, tx, seatID)
		if err != nil {
			return err
		}
		if !seat.Active {
			return domain.Fail(domain.ReasonSeatInactive, "seat was already removed").With("seat_id", seat.ID)
		}

		refs, err := tx.CountSeatItems(ctx, seat.ID)
		if err != nil {
			return fmt.Errorf("count seat items: %w", err)
		}
		soft := refs > 0
		if soft {
			err = tx.DeactivateSeat(ctx, seat.ID)
		} else {
			err = tx.DeleteSeat(ctx, seat.ID)
		}
		if err != nil {
			return fmt.Errorf("remove seat %s: %w", seat.ID, err)
		}

		payload := map[string]any{"seat_id": seat.ID, "number": seat.Number, "soft_deleted": soft}
		if err := m.record(ctx, tx, session.ID, domain.EventSeatRemoved, payload); err != nil {
			return err
		}
		result = &RemoveSeatResult{SeatID: seat.ID, SoftDeleted: soft, CorrelationID: correlationID}
		note = notification(domain.EventSeatRemoved, session)
		note.Data = payload
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.emit(ctx, note)
	return result, nil
}

// AssignItemSeat moves an unfired item to a seat, or to the shared pool when seatID is nil.
func (m *SeatManager) AssignItemSeat(ctx context.Context, itemID string, seatID *string) (*ItemResult, error) {
	ctx, _ = m.begin(ctx)

	var (
		result *ItemResult
		note   domain.Notification
	)
	err := m.store.WithTx(ctx, func(tx Tx) error {
		item, session, err := m.lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if f := rules.CanAddItems(session); f != nil {
			return f
		}

		var seat *domain.Seat
		if seatID != nil {
			seat, err = tx.LockSeat(ctx, *seatID)
			if errors.Is(err, domain.ErrNotFound) {
				return seatNotFound(*seatID)
			}
			if err != nil {
				return fmt.Errorf("lock seat %s: %w", *seatID, err)
			}
		}
		if f := rules.CanAssignSeat(item, seat); f != nil {
			return f
		}

		item.SeatID = seatID
		if err := tx.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		payload := map[string]any{"item_id": item.ID, "seat_id": seatID}
		if err := m.record(ctx, tx, session.ID, domain.EventItemSeatAssigned, payload); err != nil {
			return err
		}
		result = m.itemResult(ctx, item, session)
		note = notification(domain.EventItemSeatAssigned, session)
		note.ItemIDs = []string{item.ID}
		note.Data = map[string]any{"seat_id": seatID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.emit(ctx, note)
	return result, nil
}

func (m *SeatManager) ListSeats(ctx context.Context, sessionID string) ([]domain.Seat, error) {
	var seats []domain.Seat
	err := m.store.WithTx(ctx, func(tx Tx) error {
		session, err := m.readSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		seats, err = tx.ListSeats(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list seats: %w", err)
		}
		return nil
	})
	return seats, err
}
