package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/service"
)

// memStore is an in-memory service.Store. Transactions run one at a time against a copy of the
// state that replaces the committed state only when fn succeeds.
type memStore struct {
	mu    sync.Mutex
	state *memState
	txs   int
	// wrap, when set, decorates every transaction handed to fn.
	wrap func(service.Tx) service.Tx
}

type memState struct {
	sessions map[string]domain.Session
	waves    map[string]domain.Wave
	items    map[string]domain.Item
	seats    map[string]domain.Seat
	payments map[string]domain.Payment

	itemOrder    []string
	paymentOrder []string
	events       []domain.SessionEvent
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		sessions: map[string]domain.Session{},
		waves:    map[string]domain.Wave{},
		items:    map[string]domain.Item{},
		seats:    map[string]domain.Seat{},
		payments: map[string]domain.Payment{},
	}}
}

func (s *memState) clone() *memState {
	c := &memState{
		sessions:     make(map[string]domain.Session, len(s.sessions)),
		waves:        make(map[string]domain.Wave, len(s.waves)),
		items:        make(map[string]domain.Item, len(s.items)),
		seats:        make(map[string]domain.Seat, len(s.seats)),
		payments:     make(map[string]domain.Payment, len(s.payments)),
		itemOrder:    append([]string(nil), s.itemOrder...),
		paymentOrder: append([]string(nil), s.paymentOrder...),
		events:       append([]domain.SessionEvent(nil), s.events...),
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.waves {
		c.waves[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.seats {
		c.seats[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx service.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs++
	work := m.state.clone()
	var tx service.Tx = &memTx{st: work}
	if m.wrap != nil {
		tx = m.wrap(tx)
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) session(id string) domain.Session {
	return m.snapshot().sessions[id]
}

func (m *memStore) item(id string) domain.Item {
	return m.snapshot().items[id]
}

func (m *memStore) waveCount(sessionID string) int {
	n := 0
	for _, w := range m.snapshot().waves {
		if w.SessionID == sessionID {
			n++
		}
	}
	return n
}

func (m *memStore) eventTypes(sessionID string) []string {
	var types []string
	for _, e := range m.snapshot().events {
		if e.SessionID == sessionID {
			types = append(types, e.Type)
		}
	}
	return types
}

func (m *memStore) eventsOf(sessionID, eventType string) []domain.SessionEvent {
	var out []domain.SessionEvent
	for _, e := range m.snapshot().events {
		if e.SessionID == sessionID && e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type memTx struct {
	st *memState
}

var _ service.Tx = (*memTx)(nil)
var _ service.Store = (*memStore)(nil)

func (t *memTx) LockSession(ctx context.Context, id string) (*domain.Session, error) {
	return t.GetSession(ctx, id)
}

func (t *memTx) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s, ok := t.st.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (t *memTx) FindOpenSessionByTable(_ context.Context, tableID string) (*domain.Session, error) {
	for _, s := range t.st.sessions {
		if s.TableID == tableID && s.Status == domain.SessionOpen {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) InsertSession(ctx context.Context, s *domain.Session) error {
	if _, err := t.FindOpenSessionByTable(ctx, s.TableID); err == nil {
		return domain.ErrConflict
	}
	t.st.sessions[s.ID] = *s
	return nil
}

func (t *memTx) UpdateSessionTotals(_ context.Context, id string, totals domain.Totals) error {
	s := t.st.sessions[id]
	s.Totals = totals
	t.st.sessions[id] = s
	return nil
}

func (t *memTx) UpdateGuestCount(_ context.Context, id string, guests int) error {
	s := t.st.sessions[id]
	s.GuestCount = guests
	t.st.sessions[id] = s
	return nil
}

func (t *memTx) CloseSession(_ context.Context, id string, at time.Time) error {
	s, ok := t.st.sessions[id]
	if !ok || s.Status != domain.SessionOpen {
		return domain.ErrNotFound
	}
	s.Status = domain.SessionClosed
	s.ClosedAt = &at
	t.st.sessions[id] = s
	return nil
}

func (t *memTx) FindOpenWave(_ context.Context, sessionID string) (*domain.Wave, error) {
	for _, w := range t.st.waves {
		if w.SessionID == sessionID && w.FiredAt == nil {
			w := w
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) MaxWaveNumber(_ context.Context, sessionID string) (int, error) {
	n := 0
	for _, w := range t.st.waves {
		if w.SessionID == sessionID && w.Number > n {
			n = w.Number
		}
	}
	return n, nil
}

func (t *memTx) InsertWave(ctx context.Context, w *domain.Wave) (bool, error) {
	if _, err := t.FindOpenWave(ctx, w.SessionID); err == nil {
		return false, nil
	}
	for _, existing := range t.st.waves {
		if existing.SessionID == w.SessionID && existing.Number == w.Number {
			return false, fmt.Errorf("duplicate wave number %d", w.Number)
		}
	}
	t.st.waves[w.ID] = *w
	return true, nil
}

func (t *memTx) LockWave(_ context.Context, id string) (*domain.Wave, error) {
	w, ok := t.st.waves[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (t *memTx) GetWaveByNumber(_ context.Context, sessionID string, number int) (*domain.Wave, error) {
	for _, w := range t.st.waves {
		if w.SessionID == sessionID && w.Number == number {
			w := w
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) ListWaves(_ context.Context, sessionID string) ([]domain.Wave, error) {
	var waves []domain.Wave
	for _, w := range t.st.waves {
		if w.SessionID == sessionID {
			waves = append(waves, w)
		}
	}
	sort.Slice(waves, func(i, j int) bool { return waves[i].Number < waves[j].Number })
	return waves, nil
}

func (t *memTx) MarkWaveFired(_ context.Context, id string, at time.Time, station string) error {
	w := t.st.waves[id]
	if w.FiredAt != nil {
		return domain.ErrConflict
	}
	w.FiredAt = &at
	w.Status = domain.WaveFired
	w.Station = station
	t.st.waves[id] = w
	return nil
}

func (t *memTx) UpdateWaveTotals(_ context.Context, id string, totals domain.Totals) error {
	w := t.st.waves[id]
	w.Totals = totals
	t.st.waves[id] = w
	return nil
}

func (t *memTx) CompleteWaves(_ context.Context, sessionID string, _ time.Time) error {
	for id, w := range t.st.waves {
		if w.SessionID == sessionID {
			w.Status = domain.WaveCompleted
			t.st.waves[id] = w
		}
	}
	return nil
}

func (t *memTx) InsertItem(_ context.Context, item *domain.Item) error {
	t.st.items[item.ID] = *item
	t.st.itemOrder = append(t.st.itemOrder, item.ID)
	return nil
}

func (t *memTx) GetItem(_ context.Context, id string) (*domain.Item, error) {
	item, ok := t.st.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (t *memTx) LockItem(ctx context.Context, id string) (*domain.Item, error) {
	return t.GetItem(ctx, id)
}

func (t *memTx) listItems(match func(domain.Item) bool) []domain.Item {
	var items []domain.Item
	for _, id := range t.st.itemOrder {
		if item, ok := t.st.items[id]; ok && match(item) {
			items = append(items, item)
		}
	}
	return items
}

func (t *memTx) ListWaveItems(_ context.Context, waveID string) ([]domain.Item, error) {
	return t.listItems(func(i domain.Item) bool { return i.WaveID == waveID }), nil
}

func (t *memTx) ListSessionItems(_ context.Context, sessionID string) ([]domain.Item, error) {
	return t.listItems(func(i domain.Item) bool { return i.SessionID == sessionID }), nil
}

func (t *memTx) UpdateItem(_ context.Context, item *domain.Item) error {
	if _, ok := t.st.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	t.st.items[item.ID] = *item
	return nil
}

func (t *memTx) SendWaveItemsToKitchen(_ context.Context, waveID string, at time.Time) ([]string, error) {
	var ids []string
	for _, id := range t.st.itemOrder {
		item := t.st.items[id]
		if item.WaveID != waveID || item.Voided() {
			continue
		}
		item.SentToKitchenAt = &at
		item.RefiredAt = nil
		t.st.items[id] = item
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *memTx) CompleteItems(_ context.Context, sessionID string, at time.Time) error {
	for id, item := range t.st.items {
		if item.SessionID == sessionID {
			item.CompletedAt = &at
			t.st.items[id] = item
		}
	}
	return nil
}

func (t *memTx) MaxSeatNumber(_ context.Context, sessionID string) (int, error) {
	n := 0
	for _, s := range t.st.seats {
		if s.SessionID == sessionID && s.Number > n {
			n = s.Number
		}
	}
	return n, nil
}

func (t *memTx) InsertSeat(_ context.Context, seat *domain.Seat) error {
	for _, s := range t.st.seats {
		if s.SessionID == seat.SessionID && s.Number == seat.Number {
			return domain.ErrConflict
		}
	}
	t.st.seats[seat.ID] = *seat
	return nil
}

func (t *memTx) GetSeat(_ context.Context, id string) (*domain.Seat, error) {
	s, ok := t.st.seats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (t *memTx) LockSeat(ctx context.Context, id string) (*domain.Seat, error) {
	return t.GetSeat(ctx, id)
}

func (t *memTx) FindSeatByNumber(_ context.Context, sessionID string, number int) (*domain.Seat, error) {
	for _, s := range t.st.seats {
		if s.SessionID == sessionID && s.Number == number {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) UpdateSeatNumber(_ context.Context, id string, number int) error {
	s := t.st.seats[id]
	s.Number = number
	t.st.seats[id] = s
	return nil
}

func (t *memTx) DeactivateSeat(_ context.Context, id string) error {
	s := t.st.seats[id]
	s.Active = false
	t.st.seats[id] = s
	return nil
}

func (t *memTx) DeleteSeat(_ context.Context, id string) error {
	delete(t.st.seats, id)
	return nil
}

func (t *memTx) CountSeatItems(_ context.Context, seatID string) (int, error) {
	n := 0
	for _, item := range t.st.items {
		if item.SeatID != nil && *item.SeatID == seatID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) ListSeats(_ context.Context, sessionID string) ([]domain.Seat, error) {
	var seats []domain.Seat
	for _, s := range t.st.seats {
		if s.SessionID == sessionID {
			seats = append(seats, s)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].Number < seats[j].Number })
	return seats, nil
}

func (t *memTx) InsertPayment(_ context.Context, p *domain.Payment) error {
	t.st.payments[p.ID] = *p
	t.st.paymentOrder = append(t.st.paymentOrder, p.ID)
	return nil
}

func (t *memTx) LockPayment(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := t.st.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (t *memTx) UpdatePaymentStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	p := t.st.payments[id]
	p.Status = status
	t.st.payments[id] = p
	return nil
}

func (t *memTx) ListPayments(_ context.Context, sessionID string) ([]domain.Payment, error) {
	var payments []domain.Payment
	for _, id := range t.st.paymentOrder {
		if p := t.st.payments[id]; p.SessionID == sessionID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (t *memTx) AppendEvent(_ context.Context, e *domain.SessionEvent) error {
	t.st.events = append(t.st.events, *e)
	return nil
}
