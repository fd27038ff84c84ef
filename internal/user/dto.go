package user

import (
	"time"

	"github.com/fleethub/fleet-management/internal/auth"
)

// UserResponse is the transport shape for a user; Permissions are the
// effective set, never the raw stored flags.
type UserResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        auth.Role          `json:"role"`
	Permissions auth.PermissionSet `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// UpdatePermissionsDTO carries a partial permission update; nil fields
// keep their stored value.
type UpdatePermissionsDTO struct {
	CanView        *bool `json:"canView,omitempty"`
	CanEdit        *bool `json:"canEdit,omitempty"`
	CanExport      *bool `json:"canExport,omitempty"`
	CanManageUsers *bool `json:"canManageUsers,omitempty"`
}

// Apply merges the update into an existing permission set.
func (d UpdatePermissionsDTO) Apply(current auth.PermissionSet) auth.PermissionSet {
	if d.CanView != nil {
		current.CanView = *d.CanView
	}
	if d.CanEdit != nil {
		current.CanEdit = *d.CanEdit
	}
	if d.CanExport != nil {
		current.CanExport = *d.CanExport
	}
	if d.CanManageUsers != nil {
		current.CanManageUsers = *d.CanManageUsers
	}
	return current
}

type LimitResponse struct {
	IsLimitReached bool `json:"isLimitReached"`
}
