package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservation(id, teacher string, day, hour int) *model.Reservation {
	return &model.Reservation{
		ID:          id,
		TeacherName: teacher,
		Subject:     "Математика",
		Date:        civil.Date{Year: 2025, Month: time.October, Day: day},
		Time:        civil.Time{Hour: hour},
	}
}

func TestMemoryReservationStore_InsertRejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReservationStore()

	require.NoError(t, store.Insert(ctx, newReservation("a", "Ana", 6, 11)))
	err := store.Insert(ctx, newReservation("b", "Ana", 6, 11))
	assert.ErrorIs(t, err, ErrDuplicateReservation)

	// другой учитель в то же время - можно
	require.NoError(t, store.Insert(ctx, newReservation("c", "Luis", 6, 11)))
}

func TestMemoryReservationStore_DeleteFreesKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReservationStore()
	require.NoError(t, store.Insert(ctx, newReservation("a", "Ana", 6, 11)))

	deleted, err := store.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, store.Insert(ctx, newReservation("b", "Ana", 6, 11)))
}

func TestMemoryReservationStore_Queries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReservationStore()
	require.NoError(t, store.Insert(ctx, newReservation("late", "Ana", 8, 15)))
	require.NoError(t, store.Insert(ctx, newReservation("mid", "Ana", 6, 11)))
	require.NoError(t, store.Insert(ctx, newReservation("early", "Ana", 6, 9)))
	require.NoError(t, store.Insert(ctx, newReservation("other", "Luis", 6, 10)))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"early", "other", "mid", "late"}, ids)

	forAna, err := store.ListFor(ctx, "Ana", civil.Date{Year: 2025, Month: time.October, Day: 6})
	require.NoError(t, err)
	assert.Len(t, forAna, 2)

	next, err := store.FindNext(ctx, civil.Date{Year: 2025, Month: time.October, Day: 7})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "late", next.ID)

	none, err := store.FindNext(ctx, civil.Date{Year: 2025, Month: time.October, Day: 9})
	require.NoError(t, err)
	assert.Nil(t, none)

	missing, err := store.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryTaskStore_ClaimLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()
	now := time.Date(2025, 10, 9, 10, 0, 0, 0, time.UTC)
	resID := "res-1"

	due := &model.ReminderTask{ID: "t1", ReservationID: &resID, FireAt: now.Add(-time.Minute)}
	future := &model.ReminderTask{ID: "t2", ReservationID: &resID, FireAt: now.Add(time.Hour)}

	inserted, err := store.Insert(ctx, due)
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = store.Insert(ctx, due)
	require.NoError(t, err)
	assert.False(t, inserted)
	_, err = store.Insert(ctx, future)
	require.NoError(t, err)

	claimed, err := store.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "t1", claimed[0].ID)
	assert.Equal(t, 1, claimed[0].Attempts)

	// уже забранная задача повторно не выдаётся
	again, err := store.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, store.Release(ctx, "t1"))
	again, err = store.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, 2, again[0].Attempts)

	require.NoError(t, store.MarkDelivered(ctx, "t1"))
	got, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.ReminderStatusDelivered, got.Status)

	n, err := store.DeletePendingByReservation(ctx, resID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, store.All(), 1)
}

func TestMemoryTaskStore_ExhaustedTaskIsNotClaimed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()
	now := time.Date(2025, 10, 9, 10, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, &model.ReminderTask{ID: "t1", FireAt: now})
	require.NoError(t, err)

	for i := 0; i < model.MaxReminderAttempts; i++ {
		claimed, err := store.ClaimDue(ctx, now, 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		require.NoError(t, store.Release(ctx, "t1"))
	}

	claimed, err := store.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	// failed выставляется только из delivering
	require.NoError(t, store.MarkFailed(ctx, "t1"))
	got, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.ReminderStatusPending, got.Status)
}

func TestMemoryTaskStore_StaleClaimIsReclaimed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTaskStore()
	now := time.Date(2025, 10, 9, 10, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, &model.ReminderTask{ID: "t1", FireAt: now})
	require.NoError(t, err)

	claimed, err := store.ClaimDue(ctx, now, 0)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	later := now.Add(StaleClaimTimeout + time.Second)
	claimed, err = store.ClaimDue(ctx, later, 0)
	require.NoError(t, err)
	assert.Len(t, claimed, 1)
}
