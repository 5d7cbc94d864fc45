package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/events"
	"overcooked-floor/floor-svc/internal/reqctx"
	"overcooked-floor/floor-svc/internal/totals"
)

// Dependencies are the collaborators shared by every floor service. Access, Pricing and Notifier
// are optional: a nil Access allows every caller, a nil Pricing applies zero rates and a nil
// Notifier drops notifications.
type Dependencies struct {
	Store    Store
	Menu     MenuCatalog
	Access   AccessChecker
	Pricing  PricingProvider
	Notifier Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

type core struct {
	store    Store
	menu     MenuCatalog
	access   AccessChecker
	pricing  PricingProvider
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
	recorder *events.Recorder
}

func newCore(d Dependencies) core {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return core{
		store:    d.Store,
		menu:     d.Menu,
		access:   d.Access,
		pricing:  d.Pricing,
		notifier: d.Notifier,
		log:      log,
		now:      now,
		recorder: events.NewRecorder(now),
	}
}

// begin tags ctx with a correlation id shared by every event the operation records.
func (c *core) begin(ctx context.Context) (context.Context, string) {
	return reqctx.EnsureCorrelationID(ctx)
}

func (c *core) authorize(ctx context.Context, locationID string) error {
	if c.access == nil {
		return nil
	}
	userID := reqctx.UserID(ctx)
	ok, err := c.access.CanAccessLocation(ctx, userID, locationID)
	if err != nil {
		return fmt.Errorf("check location access: %w", err)
	}
	if !ok {
		return domain.Fail(domain.ReasonUnauthorized, "caller may not act on this location").
			With("location_id", locationID).
			With("user_id", userID)
	}
	return nil
}

func sessionNotFound(sessionID string) *domain.Failure {
	return domain.Fail(domain.ReasonSessionNotFound, "session not found").With("session_id", sessionID)
}

func itemNotFound(itemID string) *domain.Failure {
	return domain.Fail(domain.ReasonItemNotFound, "item not found").With("item_id", itemID)
}

// lockSession takes the session row lock that serializes every writer of the session.
func (c *core) lockSession(ctx context.Context, tx Tx, sessionID string) (*domain.Session, error) {
	session, err := tx.LockSession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, sessionNotFound(sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock session %s: %w", sessionID, err)
	}
	if err := c.authorize(ctx, session.LocationID); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *core) lockOpenSession(ctx context.Context, tx Tx, sessionID string) (*domain.Session, error) {
	session, err := c.lockSession(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionOpen {
		return nil, domain.Fail(domain.ReasonSessionNotOpen, "session is not open").
			With("session_id", session.ID).
			With("status", string(session.Status))
	}
	return session, nil
}

// readSession loads a session without locking it, for read-only operations.
func (c *core) readSession(ctx context.Context, tx Tx, sessionID string) (*domain.Session, error) {
	session, err := tx.GetSession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, sessionNotFound(sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if err := c.authorize(ctx, session.LocationID); err != nil {
		return nil, err
	}
	return session, nil
}

// lockItem resolves the item's session first and locks session then item, the same order every
// writer uses.
func (c *core) lockItem(ctx context.Context, tx Tx, itemID string) (*domain.Item, *domain.Session, error) {
	peek, err := tx.GetItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, itemNotFound(itemID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get item %s: %w", itemID, err)
	}

	session, err := c.lockSession(ctx, tx, peek.SessionID)
	if err != nil {
		return nil, nil, err
	}

	item, err := tx.LockItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, itemNotFound(itemID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lock item %s: %w", itemID, err)
	}
	return item, session, nil
}

func (c *core) rates(ctx context.Context, locationID string) (totals.Rates, error) {
	if c.pricing == nil {
		return totals.Rates{}, nil
	}
	rates, err := c.pricing.Rates(ctx, locationID)
	if err != nil {
		return totals.Rates{}, fmt.Errorf("load pricing for %s: %w", locationID, err)
	}
	return rates, nil
}

// recompute refreshes the stored totals of the given waves and of the session, and returns the
// session's items as read for the computation.
func (c *core) recompute(ctx context.Context, tx Tx, session *domain.Session, waveIDs ...string) ([]domain.Item, error) {
	rates, err := c.rates(ctx, session.LocationID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(waveIDs))
	for _, waveID := range waveIDs {
		if waveID == "" || seen[waveID] {
			continue
		}
		seen[waveID] = true

		items, err := tx.ListWaveItems(ctx, waveID)
		if err != nil {
			return nil, fmt.Errorf("list wave items: %w", err)
		}
		if err := tx.UpdateWaveTotals(ctx, waveID, totals.Compute(items, rates)); err != nil {
			return nil, fmt.Errorf("update wave totals: %w", err)
		}
	}

	items, err := tx.ListSessionItems(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}
	session.Totals = totals.Compute(items, rates)
	if err := tx.UpdateSessionTotals(ctx, session.ID, session.Totals); err != nil {
		return nil, fmt.Errorf("update session totals: %w", err)
	}
	return items, nil
}

func (c *core) record(ctx context.Context, tx Tx, sessionID, eventType string, payload any) error {
	_, err := c.recorder.Record(ctx, tx, sessionID, eventType, payload)
	return err
}

// emit hands notifications to the notifier. It runs after commit and never fails the caller.
func (c *core) emit(ctx context.Context, notes ...domain.Notification) {
	if c.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("notifier panicked", zap.Any("panic", r))
		}
	}()

	correlationID := reqctx.CorrelationID(ctx)
	for _, n := range notes {
		if n.CorrelationID == "" {
			n.CorrelationID = correlationID
		}
		if n.OccurredAt.IsZero() {
			n.OccurredAt = c.now().UTC()
		}
		c.notifier.Emit(n)
	}
}

func (c *core) itemResult(ctx context.Context, item *domain.Item, session *domain.Session) *ItemResult {
	return &ItemResult{
		Item:          *item,
		SessionTotals: session.Totals,
		CorrelationID: reqctx.CorrelationID(ctx),
	}
}

func notification(eventType string, session *domain.Session) domain.Notification {
	return domain.Notification{
		Type:       eventType,
		SessionID:  session.ID,
		LocationID: session.LocationID,
		TableID:    session.TableID,
	}
}

func liveItems(items []domain.Item) []domain.Item {
	var live []domain.Item
	for _, item := range items {
		if !item.Voided() {
			live = append(live, item)
		}
	}
	return live
}

func itemIDs(items []domain.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
