package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/rewardlab/event-platform/services/auth/internal/models"
)

func (r *GormRepo) CreateStaffIfNotExists(ctx context.Context, s *models.Staff) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", s.Username).FirstOrCreate(s)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) FindStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GormRepo) FindStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GormRepo) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
