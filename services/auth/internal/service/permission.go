package service

import (
	"context"
	"errors"
	"slices"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/services/auth/internal/models"
	"github.com/rewardlab/event-platform/services/auth/internal/repo"
)

type PermissionService struct {
	Repo *repo.GormRepo
}

// Reconcile seeds or updates the stored role rows from the static table.
// Runs once at startup; never on the request path.
func (s *PermissionService) Reconcile(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "auth.permission_reconcile")

	for role, perms := range permissions.RolePermissions {
		existing, err := s.Repo.GetPermission(ctx, role)
		if err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			perm := models.Permission{Role: role}
			perm.SetList(perms)
			if err := s.Repo.CreatePermission(ctx, &perm); err != nil {
				return err
			}
			l.Info("permissions_created", "role", role)
			continue
		}

		if permissionsEqual(existing.List(), perms) {
			continue
		}
		existing.SetList(perms)
		if err := s.Repo.SavePermission(ctx, existing); err != nil {
			return err
		}
		l.Info("permissions_updated", "role", role)
	}
	return nil
}

func permissionsEqual(existing, updated []string) bool {
	if len(existing) != len(updated) {
		return false
	}
	a := slices.Clone(existing)
	b := slices.Clone(updated)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// HasPermission reports whether role carries the required permission.
// Admin is granted without a registry read.
func (s *PermissionService) HasPermission(ctx context.Context, role, required string) (bool, error) {
	if role == "" {
		return false, nil
	}
	if permissions.IsAdmin(role) {
		return true, nil
	}

	perm, err := s.Repo.GetPermission(ctx, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return slices.Contains(perm.List(), required), nil
}
