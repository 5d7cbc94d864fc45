package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/service"
)

func seatNumbers(t *testing.T, f *floor, sessionID string) map[string]int {
	t.Helper()
	seats, err := f.seats.ListSeats(context.Background(), sessionID)
	require.NoError(t, err)
	numbers := make(map[string]int, len(seats))
	for _, s := range seats {
		numbers[s.ID] = s.Number
	}
	return numbers
}

func TestSeatManager_AddAndRenumber(t *testing.T) {
	f := newFloor(t)
	ctx := context.Background()
	session := f.open(t)

	var ids []string
	for i := 1; i <= 3; i++ {
		seat, err := f.seats.AddSeat(ctx, session.ID, "")
		require.NoError(t, err)
		assert.Equal(t, i, seat.Number)
		assert.True(t, seat.Active)
		ids = append(ids, seat.ID)
	}

	seat, err := f.seats.RenumberSeat(ctx, ids[2], 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seat.Number)
	assert.Equal(t, map[string]int{ids[0]: 3, ids[1]: 2, ids[2]: 1}, seatNumbers(t, f, session.ID))

	renumbered := f.store.eventsOf(session.ID, domain.EventSeatRenumbered)
	require.Len(t, renumbered, 1)
	assert.JSONEq(t, `{"seat_id":"`+ids[2]+`","from":3,"to":1,"swapped_with":"`+ids[0]+`"}`, string(renumbered[0].Payload))

	seat, err = f.seats.RenumberSeat(ctx, ids[1], 7)
	require.NoError(t, err)
	assert.Equal(t, 7, seat.Number)

	f.notifier.reset()
	_, err = f.seats.RenumberSeat(ctx, ids[1], 7)
	require.NoError(t, err)
	assert.Empty(t, f.notifier.types())
	assert.Len(t, f.store.eventsOf(session.ID, domain.EventSeatRenumbered), 2)

	_, err = f.seats.RenumberSeat(ctx, ids[1], 0)
	requireReason(t, err, domain.ReasonInvalidInput)
	_, err = f.seats.RenumberSeat(ctx, "missing", 2)
	requireReason(t, err, domain.ReasonSeatNotFound)

	fourth, err := f.seats.AddSeat(ctx, session.ID, "high chair")
	require.NoError(t, err)
	assert.Equal(t, 8, fourth.Number)
	assert.Equal(t, "high chair", fourth.Label)
}

func TestSeatManager_RemoveSeat(t *testing.T) {
	f := newFloor(t)
	ctx := context.Background()
	session := f.open(t)
	used, err := f.seats.AddSeat(ctx, session.ID, "")
	require.NoError(t, err)
	empty, err := f.seats.AddSeat(ctx, session.ID, "")
	require.NoError(t, err)
	f.add(t, session.ID, service.NewItem{MenuItemID: "burger", Quantity: 1, SeatID: &used.ID})

	result, err := f.seats.RemoveSeat(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, result.SoftDeleted)

	result, err = f.seats.RemoveSeat(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, result.SoftDeleted)

	seats, err := f.seats.ListSeats(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, seats, 1)
	assert.Equal(t, used.ID, seats[0].ID)
	assert.False(t, seats[0].Active)

	_, err = f.seats.RemoveSeat(ctx, used.ID)
	requireReason(t, err, domain.ReasonSeatInactive)
	_, err = f.seats.RemoveSeat(ctx, empty.ID)
	requireReason(t, err, domain.ReasonSeatNotFound)

	_, err = f.waves.AddItems(ctx, session.ID, []service.NewItem{{MenuItemID: "fries", Quantity: 1, SeatID: &used.ID}})
	requireReason(t, err, domain.ReasonSeatInactive)
}

func TestSeatManager_AssignItemSeat(t *testing.T) {
	f := newFloor(t)
	ctx := context.Background()
	session := f.open(t)
	seat, err := f.seats.AddSeat(ctx, session.ID, "")
	require.NoError(t, err)
	removed, err := f.seats.AddSeat(ctx, session.ID, "")
	require.NoError(t, err)
	itemID := f.add(t, session.ID, line("burger", 1), service.NewItem{MenuItemID: "fries", Quantity: 1, SeatID: &removed.ID}).ItemIDs[0]
	_, err = f.seats.RemoveSeat(ctx, removed.ID)
	require.NoError(t, err)

	other, err := f.sessions.OpenSession(ctx, service.OpenSessionRequest{LocationID: testLocation, TableID: "T99"})
	require.NoError(t, err)
	foreign, err := f.seats.AddSeat(ctx, other.ID, "")
	require.NoError(t, err)

	result, err := f.seats.AssignItemSeat(ctx, itemID, &seat.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Item.SeatID)
	assert.Equal(t, seat.ID, *result.Item.SeatID)

	tests := []struct {
		name       string
		seatID     string
		wantReason domain.Reason
	}{
		{name: "removed seat", seatID: removed.ID, wantReason: domain.ReasonSeatInactive},
		{name: "seat of another session", seatID: foreign.ID, wantReason: domain.ReasonSeatNotInSession},
		{name: "unknown seat", seatID: "seat-x", wantReason: domain.ReasonSeatNotFound},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			seatID := testCase.seatID
			_, err := f.seats.AssignItemSeat(ctx, itemID, &seatID)

			requireReason(t, err, testCase.wantReason)
			assert.Equal(t, seat.ID, *f.store.item(itemID).SeatID)
		})
	}

	result, err = f.seats.AssignItemSeat(ctx, itemID, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Item.SeatID)
	assert.Len(t, f.store.eventsOf(session.ID, domain.EventItemSeatAssigned), 2)
}
