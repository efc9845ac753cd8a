package service

import (
	"context"
	"time"

	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
)

type AttendanceService struct {
	Repo *repo.GormRepo
}

// CheckIn records attendance for the calendar day of t (UTC).
func (s *AttendanceService) CheckIn(ctx context.Context, userID string, t time.Time) (*models.Attendance, error) {
	if userID == "" {
		return nil, ErrValidation
	}
	day := t.UTC().Truncate(24 * time.Hour)
	return s.Repo.CreateAttendance(ctx, userID, day)
}

func (s *AttendanceService) Days(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountAttendanceDays(ctx, userID)
}
