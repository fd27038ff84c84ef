package user

import (
	"time"

	"github.com/fleethub/fleet-management/internal"
	"github.com/fleethub/fleet-management/internal/auth"
)

type User struct {
	ID           int64              `json:"id" gorm:"primaryKey"`
	Name         string             `json:"name" gorm:"not null"`
	Email        string             `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string             `json:"-" gorm:"column:password_hash;not null"`
	Role         auth.Role          `json:"role" gorm:"default:user"`
	Permissions  auth.PermissionSet `json:"permissions" gorm:"embedded"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// EffectivePermissions is the permission set as reported to callers.
// Stored flags for an admin are irrelevant: an admin always reads all-true.
func (u *User) EffectivePermissions() auth.PermissionSet {
	if u.IsAdmin() {
		return auth.AllPermissions()
	}
	return u.Permissions
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.EffectivePermissions(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

var ErrNotFound = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
