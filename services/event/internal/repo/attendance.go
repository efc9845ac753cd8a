package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/services/event/internal/models"
)

// CreateAttendance records one check-in per user per day.
func (r *GormRepo) CreateAttendance(ctx context.Context, userID string, day time.Time) (*models.Attendance, error) {
	var existing models.Attendance
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND attendance_date = ?", userID, day).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	att := models.Attendance{UserID: userID, AttendanceDate: day}
	if err := r.DB.WithContext(ctx).Create(&att).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *GormRepo) CountAttendanceDays(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Attendance{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
