package habit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func dailyDTO(count int) CreateHabitDTO {
	return CreateHabitDTO{
		Name:            "Drink water",
		StartDate:       day("2025-06-10"),
		Repeat:          schedule.RepeatDaily,
		RepeatCount:     intPtr(count),
		ReminderOffsets: []int{1},
	}
}

func TestCreateHabit(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()

	h, err := f.service.Create(userContext(owner), dailyDTO(3))
	require.NoError(t, err)

	assert.Equal(t, owner, h.OwnerID)
	assert.Equal(t, StatusActive, h.Status)
	assert.Equal(t, KindPersonal, h.Kind)
	assert.Equal(t, days("2025-06-10", "2025-06-11", "2025-06-12"), []util.Date(h.RepeatDates))
	assert.Equal(t, days("2025-06-10", "2025-06-11"), []util.Date(h.Reminders))

	stored, err := f.repo.FindByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.RepeatDates, stored.RepeatDates)
}

func TestCreateWeeklyCountsStartDay(t *testing.T) {
	f := newFixture(t)

	h, err := f.service.Create(userContext(uuid.New()), CreateHabitDTO{
		Name:        "Long run",
		StartDate:   day("2025-06-10"),
		Repeat:      schedule.RepeatWeekly,
		RepeatDays:  []string{"Tuesday"},
		Frequency:   1,
		RepeatCount: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, days("2025-06-10", "2025-06-17"), []util.Date(h.RepeatDates))
}

func TestCreateRejections(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		dto     CreateHabitDTO
		wantErr error
		invalid bool
	}{
		{
			name:    "unauthenticated",
			ctx:     context.Background(),
			dto:     dailyDTO(3),
			wantErr: ErrUnauthorized,
		},
		{
			name:    "missing name",
			ctx:     userContext(uuid.New()),
			dto:     CreateHabitDTO{StartDate: day("2025-06-10")},
			wantErr: ErrNameRequired,
		},
		{
			name:    "past start",
			ctx:     userContext(uuid.New()),
			dto:     CreateHabitDTO{Name: "x", StartDate: day("2025-06-09")},
			invalid: true,
		},
		{
			name:    "weekly without days",
			ctx:     userContext(uuid.New()),
			dto:     CreateHabitDTO{Name: "x", StartDate: day("2025-06-10"), Repeat: schedule.RepeatWeekly},
			invalid: true,
		},
		{
			name:    "duplicate reminder offsets",
			ctx:     userContext(uuid.New()),
			dto:     CreateHabitDTO{Name: "x", StartDate: day("2025-06-10"), ReminderOffsets: []int{2, 2}},
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.service.Create(tt.ctx, tt.dto)
			require.Error(t, err)
			if tt.invalid {
				assert.True(t, schedule.IsValidationError(err), "got %v", err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, f.repo.habits)
		})
	}
}

func TestUpdateRegeneratesSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{RepeatCount: intPtr(5)})
	require.NoError(t, err)
	assert.Len(t, updated.RepeatDates, 5)
	assert.Equal(t, day("2025-06-14"), updated.RepeatDates[4])

	weekly := schedule.RepeatWeekly
	updated, err = f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{
		Repeat:     &weekly,
		RepeatDays: &[]string{"tue", "fri"},
	})
	require.NoError(t, err)
	assert.Equal(t, days("2025-06-10", "2025-06-13", "2025-06-17", "2025-06-20", "2025-06-24", "2025-06-27", "2025-07-01", "2025-07-04", "2025-07-08", "2025-07-11"),
		[]util.Date(updated.RepeatDates))
}

func TestUpdateScheduleKeepsCompletionHistory(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)
	_, err = f.service.Track(ctx, h.ID.String(), TrackDTO{})
	require.NoError(t, err)

	weekly := schedule.RepeatWeekly
	updated, err := f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{
		Repeat:     &weekly,
		RepeatDays: &[]string{"sat"},
	})
	require.NoError(t, err)
	assert.NotContains(t, []util.Date(updated.RepeatDates), day("2025-06-10"))
	assert.Equal(t, days("2025-06-10"), []util.Date(updated.CompletionDates))
	assert.Equal(t, 1, updated.Streak)
	require.NotNil(t, updated.LastCompleted)
	assert.Equal(t, day("2025-06-10"), *updated.LastCompleted)
}

func TestUpdateWithoutScheduleFieldsKeepsOccurrences(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)
	_, err = f.service.DeleteOccurrence(ctx, h.ID.String(), day("2025-06-11"))
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{Name: strPtr("Drink more water")})
	require.NoError(t, err)
	assert.Equal(t, "Drink more water", updated.Name)
	assert.Equal(t, days("2025-06-10", "2025-06-12"), []util.Date(updated.RepeatDates))
}

func TestUpdateRejectsInvalidScheduleWithoutWriting(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)

	_, err = f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{EndDate: day("2025-06-01").Ptr()})
	require.Error(t, err)
	assert.True(t, schedule.IsValidationError(err))

	stored, err := f.repo.FindByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndDate)
	assert.Len(t, stored.RepeatDates, 3)
}

func TestUpdateOwnershipAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)

	_, err = f.service.Update(userContext(uuid.New()), h.ID.String(), UpdateHabitDTO{Name: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrHabitNotFound)

	completed := StatusCompleted
	_, err = f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{Status: &completed})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	inactive := StatusInactive
	updated, err := f.service.Update(ctx, h.ID.String(), UpdateHabitDTO{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)

	_, err = f.service.Update(ctx, "not-a-uuid", UpdateHabitDTO{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestTrackIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, CreateHabitDTO{Name: "Meditate", StartDate: day("2025-06-10")})
	require.NoError(t, err)

	first, err := f.service.Track(ctx, h.ID.String(), TrackDTO{})
	require.NoError(t, err)
	second, err := f.service.Track(ctx, h.ID.String(), TrackDTO{Completed: boolPtr(true)})
	require.NoError(t, err)

	assert.Equal(t, first.Habit.CompletionDates, second.Habit.CompletionDates)
	assert.Equal(t, first.Habit.Streak, second.Habit.Streak)
	assert.Equal(t, days("2025-06-10"), []util.Date(second.Habit.CompletionDates))
	assert.Equal(t, 1, second.Habit.Streak)
	assert.Equal(t, StatusCompleted, second.Habit.Status)
	assert.Equal(t, Stats{Total: 1, Completed: 1}, second.Stats)
}

func TestTrackRejectsFutureDate(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)

	_, err = f.service.Track(ctx, h.ID.String(), TrackDTO{Date: day("2025-06-11").Ptr()})
	assert.ErrorIs(t, err, ErrFutureDate)

	stored, err := f.repo.FindByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.CompletionDates)
}

func TestTrackRecomputesStreak(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	ctx := userContext(owner)
	h := f.seed(&Habit{
		OwnerID:         owner,
		Name:            "Journal",
		StartDate:       day("2025-06-01"),
		Repeat:          schedule.RepeatDaily,
		CompletionDates: days("2025-06-08"),
	})

	res, err := f.service.Track(ctx, h.ID.String(), TrackDTO{Date: day("2025-06-09").Ptr()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Habit.Streak)
	assert.Equal(t, StatusActive, res.Habit.Status, "tracking a past day leaves status alone")

	res, err = f.service.Track(ctx, h.ID.String(), TrackDTO{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Habit.Streak)
	assert.Equal(t, day("2025-06-10"), *res.Habit.LastCompleted)

	res, err = f.service.Track(ctx, h.ID.String(), TrackDTO{Completed: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Habit.Streak)
	assert.Equal(t, StatusActive, res.Habit.Status)
	assert.Equal(t, day("2025-06-09"), *res.Habit.LastCompleted)
}

func TestDeleteOccurrence(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)
	_, err = f.service.Track(ctx, h.ID.String(), TrackDTO{})
	require.NoError(t, err)

	updated, err := f.service.DeleteOccurrence(ctx, h.ID.String(), day("2025-06-10"))
	require.NoError(t, err)
	assert.Equal(t, days("2025-06-11", "2025-06-12"), []util.Date(updated.RepeatDates))
	assert.Equal(t, days("2025-06-10", "2025-06-11"), []util.Date(updated.Reminders))
	assert.Empty(t, updated.CompletionDates)
	assert.Zero(t, updated.Streak)
	assert.Nil(t, updated.LastCompleted)

	_, err = f.service.DeleteOccurrence(ctx, h.ID.String(), day("2025-07-01"))
	assert.ErrorIs(t, err, ErrOccurrenceNotFound)
}

func TestDeleteHabit(t *testing.T) {
	f := newFixture(t)
	ctx := userContext(uuid.New())

	h, err := f.service.Create(ctx, dailyDTO(3))
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.Delete(userContext(uuid.New()), h.ID.String()), ErrHabitNotFound)
	require.NoError(t, f.service.Delete(ctx, h.ID.String()))

	_, err = f.service.Get(ctx, h.ID.String())
	assert.ErrorIs(t, err, ErrHabitNotFound)

	list, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQueryRange(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	ctx := userContext(owner)

	scheduled := f.seed(&Habit{
		OwnerID:     owner,
		Name:        "scheduled",
		StartDate:   day("2025-06-01"),
		RepeatDates: days("2025-06-01", "2025-06-15"),
	})
	adHoc := f.seed(&Habit{
		OwnerID:         owner,
		Name:            "ad hoc",
		StartDate:       day("2025-06-02"),
		CompletionDates: days("2025-06-03", "2025-06-20"),
	})
	f.seed(&Habit{OwnerID: owner, Name: "later", StartDate: day("2025-07-01"), RepeatDates: days("2025-07-01")})
	f.seed(&Habit{OwnerID: uuid.New(), Name: "someone else", StartDate: day("2025-06-01"), RepeatDates: days("2025-06-01")})

	results, err := f.service.QueryRange(ctx, day("2025-06-01"), day("2025-06-10"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, scheduled.ID, results[0].ID)
	assert.Equal(t, days("2025-06-01"), results[0].DatesInRange)
	assert.True(t, results[0].IsRepeated)
	assert.Empty(t, results[0].CompletionDatesInRange)

	assert.Equal(t, adHoc.ID, results[1].ID)
	assert.Equal(t, days("2025-06-03"), results[1].DatesInRange)
	assert.False(t, results[1].IsRepeated)
	assert.Equal(t, days("2025-06-03"), results[1].CompletionDatesInRange)

	_, err = f.service.QueryRange(ctx, day("2025-06-10"), day("2025-06-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	for _, st := range []Status{StatusActive, StatusActive, StatusInactive, StatusCompleted, StatusPending} {
		f.seed(&Habit{OwnerID: owner, Name: string(st), StartDate: day("2025-06-10"), Status: st})
	}
	f.seed(&Habit{OwnerID: uuid.New(), Name: "other", StartDate: day("2025-06-10")})

	stats, err := f.service.Stats(userContext(owner))
	require.NoError(t, err)
	assert.Equal(t, &Stats{Total: 5, Active: 2, Inactive: 1, Completed: 1, Pending: 1}, stats)
}
