package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardlab/event-platform/services/event/internal/repo"
)

func TestCheckIn_OncePerDay(t *testing.T) {
	t.Parallel()

	svc := &AttendanceService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	att, err := svc.CheckIn(ctx, "user-1", day)
	require.NoError(t, err)
	assert.Equal(t, "user-1", att.UserID)

	// same calendar day, different hour
	_, err = svc.CheckIn(ctx, "user-1", day.Add(6*time.Hour))
	assert.ErrorIs(t, err, repo.ErrAlreadyCheckedIn)

	// next day is fine, and another user is independent
	_, err = svc.CheckIn(ctx, "user-1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "user-2", day)
	require.NoError(t, err)

	days, err := svc.Days(ctx, "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, days)
}

func TestCheckIn_RequiresUser(t *testing.T) {
	t.Parallel()

	svc := &AttendanceService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
	_, err := svc.CheckIn(context.Background(), "", time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}
