package repo

import (
	"context"

	"github.com/rewardlab/event-platform/services/auth/internal/models"
)

func (r *GormRepo) GetPermission(ctx context.Context, role string) (*models.Permission, error) {
	var perm models.Permission
	if err := r.DB.WithContext(ctx).Where("role = ?", role).First(&perm).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *GormRepo) CreatePermission(ctx context.Context, perm *models.Permission) error {
	return r.DB.WithContext(ctx).Create(perm).Error
}

func (r *GormRepo) SavePermission(ctx context.Context, perm *models.Permission) error {
	return r.DB.WithContext(ctx).Save(perm).Error
}
