package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/services/event/internal/models"
)

// RequestRewardFilter narrows ListRequestRewards. Zero fields are ignored.
type RequestRewardFilter struct {
	UserID    string
	EventID   uuid.UUID
	Result    string
	StartDate time.Time
	EndDate   time.Time
}

func (r *GormRepo) CreateRequestReward(ctx context.Context, req *models.RequestReward) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *GormRepo) GetRequestReward(ctx context.Context, id uuid.UUID) (*models.RequestReward, error) {
	var req models.RequestReward
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepo) ListRequestRewards(ctx context.Context, f RequestRewardFilter) ([]models.RequestReward, error) {
	q := r.DB.WithContext(ctx).Model(&models.RequestReward{}).Order("requested_at DESC")
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.EventID != uuid.Nil {
		q = q.Where("event_id = ?", f.EventID)
	}
	if f.Result != "" {
		q = q.Where("result = ?", f.Result)
	}
	if !f.StartDate.IsZero() {
		q = q.Where("requested_at >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where("requested_at <= ?", f.EndDate)
	}
	var items []models.RequestReward
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveRequestReward(ctx context.Context, req *models.RequestReward) error {
	return r.DB.WithContext(ctx).Save(req).Error
}

func (r *GormRepo) DeleteRequestReward(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.RequestReward{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
