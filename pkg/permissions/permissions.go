// Package permissions holds the platform's role and permission vocabulary.
// A permission is a "resource:action" pair; the static role table below is
// reconciled into the credential store at auth service startup.
package permissions

import "strings"

const (
	ResourceEvent         = "event"
	ResourceReward        = "reward"
	ResourceRequestReward = "request_reward"
)

const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionReadOwn = "read_own"
)

const (
	RoleUser     = "user"
	RoleOperator = "operator"
	RoleAuditor  = "auditor"
	RoleAdmin    = "admin"
)

// StaffRoles are the roles a staff account may carry.
var StaffRoles = []string{RoleAdmin, RoleOperator, RoleAuditor}

// Value joins a resource and an action into a permission string.
func Value(resource, action string) string {
	return resource + ":" + action
}

// RolePermissions is the static role table. Admin is listed for
// completeness but checks short-circuit on IsAdmin before consulting it.
var RolePermissions = map[string][]string{
	RoleUser: {
		Value(ResourceRequestReward, ActionCreate),
		Value(ResourceRequestReward, ActionReadOwn),
		Value(ResourceEvent, ActionRead),
		Value(ResourceReward, ActionRead),
	},
	RoleAuditor: {
		Value(ResourceRequestReward, ActionRead),
		Value(ResourceReward, ActionRead),
		Value(ResourceEvent, ActionRead),
	},
	RoleOperator: {
		Value(ResourceRequestReward, ActionRead),
		Value(ResourceReward, ActionRead),
		Value(ResourceReward, ActionCreate),
		Value(ResourceReward, ActionUpdate),
		Value(ResourceEvent, ActionRead),
		Value(ResourceEvent, ActionCreate),
		Value(ResourceEvent, ActionUpdate),
	},
	RoleAdmin: {
		Value(ResourceEvent, ActionCreate),
		Value(ResourceEvent, ActionRead),
		Value(ResourceEvent, ActionUpdate),
		Value(ResourceEvent, ActionDelete),
		Value(ResourceReward, ActionCreate),
		Value(ResourceReward, ActionRead),
		Value(ResourceReward, ActionUpdate),
		Value(ResourceReward, ActionDelete),
		Value(ResourceRequestReward, ActionCreate),
		Value(ResourceRequestReward, ActionRead),
		Value(ResourceRequestReward, ActionUpdate),
		Value(ResourceRequestReward, ActionDelete),
	},
}

func IsAdmin(role string) bool {
	return strings.EqualFold(role, RoleAdmin)
}

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// Identity propagation headers set by the gateway on authenticated
// outbound calls. Backends trust these instead of re-verifying tokens.
const (
	HeaderUserID   = "x-user-id"
	HeaderUserRole = "x-user-role"
	HeaderUserName = "x-user-name"
)

// Principal is the authenticated identity attached to a request after
// token verification and liveness confirmation. Built only from verified
// claims; immutable for the request's lifetime.
type Principal struct {
	SubjectID string
	Username  string
	Role      string
	UserType  string
}
