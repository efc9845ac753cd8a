package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/services/event/internal/models"
)

func (r *GormRepo) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormRepo) ListEvents(ctx context.Context, status string) ([]models.Event, error) {
	q := r.DB.WithContext(ctx).Model(&models.Event{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []models.Event
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *GormRepo) SaveEvent(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Save(event).Error
}

func (r *GormRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
