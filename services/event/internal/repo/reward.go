package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/services/event/internal/models"
)

func (r *GormRepo) GetReward(ctx context.Context, id uuid.UUID) (*models.Reward, error) {
	var reward models.Reward
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *GormRepo) ListRewards(ctx context.Context, eventID uuid.UUID) ([]models.Reward, error) {
	q := r.DB.WithContext(ctx).Model(&models.Reward{}).Order("created_at DESC")
	if eventID != uuid.Nil {
		q = q.Where("event_id = ?", eventID)
	}
	var items []models.Reward
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateReward(ctx context.Context, reward *models.Reward) error {
	return r.DB.WithContext(ctx).Create(reward).Error
}

func (r *GormRepo) SaveReward(ctx context.Context, reward *models.Reward) error {
	return r.DB.WithContext(ctx).Save(reward).Error
}

func (r *GormRepo) DeleteReward(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Reward{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
