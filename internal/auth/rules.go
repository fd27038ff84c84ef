package auth

import (
	"github.com/fleethub/fleet-management/internal"
)

// The special cases around admins and user counts are kept as named rules
// rather than scattered conditionals so each one can be tested on its own.
const (
	RuleAdminBypass           = "admin-bypass"
	RuleCapabilityGrant       = "capability-grant"
	RuleAdminTargetProtection = "admin-target-protection"
	RuleAdminDeleteProtection = "admin-delete-protection"
	RuleSelfDeleteProtection  = "self-delete-protection"
	RuleLastUserProtection    = "last-user-protection"
	RuleRegistrationCap       = "registration-cap"
)

// MaxUsers is the hard cap on registered accounts.
const MaxUsers = 5

var (
	ErrAdminTargetProtected = internal.NewForbiddenError("Cannot change permissions of an admin user", internal.ErrCodeAdminProtected)
	ErrAdminDeleteProtected = internal.NewForbiddenError("Cannot delete an admin user", internal.ErrCodeAdminProtected)
	ErrSelfDeleteRejected   = internal.NewForbiddenError("Cannot delete your own account", internal.ErrCodeSelfDeleteRejected)
	ErrLastUserProtected    = internal.NewBlockedError("Cannot delete the only user in the system", internal.ErrCodeLastUserProtected)
	ErrUserLimitReached     = internal.NewBlockedError("User limit reached, cannot register more users", internal.ErrCodeUserLimitReached)
)

// UserPolicy holds the side-channel rules layered on top of the base
// capability check for user-management operations.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy {
	return &UserPolicy{}
}

// CanUpdatePermissions enforces admin-target-protection: an admin's
// permission set cannot be altered by anyone but that same admin.
func (UserPolicy) CanUpdatePermissions(actor *Principal, targetRole Role, targetID int64) error {
	if targetRole == RoleAdmin && (actor == nil || actor.ID != targetID) {
		return ErrAdminTargetProtected
	}
	return nil
}

// CanDeleteUser enforces admin-delete-protection, self-delete-protection
// and last-user-protection, in that order.
func (UserPolicy) CanDeleteUser(actor *Principal, targetRole Role, targetID int64, totalUsers int64) error {
	if targetRole == RoleAdmin {
		return ErrAdminDeleteProtected
	}
	if actor != nil && actor.ID == targetID {
		return ErrSelfDeleteRejected
	}
	if totalUsers <= 1 {
		return ErrLastUserProtected
	}
	return nil
}

// CanRegister enforces the registration cap. A full system is a limit
// condition, not a permission denial.
func (UserPolicy) CanRegister(totalUsers int64) error {
	if totalUsers >= MaxUsers {
		return ErrUserLimitReached
	}
	return nil
}
