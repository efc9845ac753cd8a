package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/services/auth/internal/repo"
)

func newTestPermissionService(t *testing.T) *PermissionService {
	t.Helper()
	return &PermissionService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
}

func TestReconcile_SeedsRoleTable(t *testing.T) {
	t.Parallel()

	svc := newTestPermissionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Reconcile(ctx))

	for role, perms := range permissions.RolePermissions {
		stored, err := svc.Repo.GetPermission(ctx, role)
		require.NoError(t, err, role)
		assert.ElementsMatch(t, perms, stored.List(), role)
	}
}

func TestReconcile_RepairsDriftedRecord(t *testing.T) {
	t.Parallel()

	svc := newTestPermissionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Reconcile(ctx))

	stored, err := svc.Repo.GetPermission(ctx, permissions.RoleUser)
	require.NoError(t, err)
	stored.SetList([]string{"event:delete"})
	require.NoError(t, svc.Repo.SavePermission(ctx, stored))

	require.NoError(t, svc.Reconcile(ctx))

	stored, err = svc.Repo.GetPermission(ctx, permissions.RoleUser)
	require.NoError(t, err)
	assert.ElementsMatch(t, permissions.RolePermissions[permissions.RoleUser], stored.List())
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	svc := newTestPermissionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Reconcile(ctx))

	tests := []struct {
		name       string
		role       string
		permission string
		want       bool
	}{
		{name: "user may claim", role: "user", permission: "request_reward:create", want: true},
		{name: "user may read own", role: "user", permission: "request_reward:read_own", want: true},
		{name: "user cannot read all", role: "user", permission: "request_reward:read", want: false},
		{name: "auditor reads", role: "auditor", permission: "request_reward:read", want: true},
		{name: "auditor cannot create events", role: "auditor", permission: "event:create", want: false},
		{name: "operator creates events", role: "operator", permission: "event:create", want: true},
		{name: "operator cannot delete events", role: "operator", permission: "event:delete", want: false},
		{name: "admin implicit", role: "admin", permission: "event:delete", want: true},
		{name: "empty role denied", role: "", permission: "event:read", want: false},
		{name: "unknown role denied", role: "ghost", permission: "event:read", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.HasPermission(ctx, tt.role, tt.permission)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
