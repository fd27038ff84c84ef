package user

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fleethub/fleet-management/internal/auth"
)

type Repository interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	UpdatePermissions(id int64, permissions auth.PermissionSet) error
	Delete(id int64) error
	Count() (int64, error)
}

// Service handles user management. All operations here are admin-gated at
// the route level; the policy rules add the per-target restrictions.
type Service struct {
	repo   Repository
	policy *auth.UserPolicy
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.UserPolicy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

func (s *Service) ListUsers() ([]UserResponse, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *Service) GetByID(id int64) (*UserResponse, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := u.ToResponse()
	return &resp, nil
}

// UpdatePermissions merges the partial update into the target's stored
// permission set. Admin targets are protected: only that same admin may
// touch them, and even then the effective set stays all-true.
func (s *Service) UpdatePermissions(actor *auth.Principal, targetID int64, dto UpdatePermissionsDTO) (*UserResponse, error) {
	target, err := s.repo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to get user", "error", err, "user_id", targetID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.policy.CanUpdatePermissions(actor, target.Role, target.ID); err != nil {
		s.logger.Warn("permission update denied",
			"rule", auth.RuleAdminTargetProtection,
			"actor_id", actor.ID,
			"target_id", targetID)
		return nil, err
	}

	updated := dto.Apply(target.Permissions)
	if err := s.repo.UpdatePermissions(targetID, updated); err != nil {
		s.logger.Error("failed to update permissions", "error", err, "target_id", targetID)
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}

	target.Permissions = updated
	s.logger.Info("permissions updated", "actor_id", actor.ID, "target_id", targetID)

	resp := target.ToResponse()
	return &resp, nil
}

// DeleteUser removes an account, subject to the admin-delete, self-delete
// and last-user protection rules.
func (s *Service) DeleteUser(actor *auth.Principal, targetID int64) error {
	target, err := s.repo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("failed to get user", "error", err, "user_id", targetID)
		return fmt.Errorf("failed to get user: %w", err)
	}

	total, err := s.repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if err := s.policy.CanDeleteUser(actor, target.Role, target.ID, total); err != nil {
		s.logger.Warn("user deletion denied", "actor_id", actor.ID, "target_id", targetID, "error", err)
		return err
	}

	if err := s.repo.Delete(targetID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "target_id", targetID)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "actor_id", actor.ID, "target_id", targetID)
	return nil
}

// LimitReached reports whether the registration cap has been hit.
func (s *Service) LimitReached() (bool, error) {
	total, err := s.repo.Count()
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return total >= auth.MaxUsers, nil
}
