package permission

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/domain/permission"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

// UserSource looks up the account whose role decides the outcome of a
// permission check.
type UserSource interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// Service answers coarse "may this account touch this resource" questions
// against the policy store. The role is read from the database, never from
// token claims, so a demotion takes effect before the token expires.
type Service struct {
	users    UserSource
	enforcer permission.Enforcer
	logger   logger.Interface
}

func NewService(users UserSource, enforcer permission.Enforcer, logger logger.Interface) *Service {
	return &Service{
		users:    users,
		enforcer: enforcer,
		logger:   logger,
	}
}

// CheckPermission reports whether the account may perform action on
// resource. Unknown, pending, and suspended accounts hold no permissions.
func (s *Service) CheckPermission(ctx context.Context, userID uint, resource, action string) (bool, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return false, nil
		}
		s.logger.Errorw("failed to load account for permission check",
			"error", err, "user_id", userID)
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	if !account.CanPerformActions() {
		return false, nil
	}

	return s.enforcer.Enforce(account.Role().String(), resource, action)
}

// RoleGrants lists the grants a role holds, for diagnostics and UI gating.
func (s *Service) RoleGrants(role authorization.UserRole) ([]*permission.Grant, error) {
	if !role.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown role: %s", role))
	}

	rules, err := s.enforcer.GetPermissionsForRole(role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list role grants: %w", err)
	}

	grants := make([]*permission.Grant, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		grant, err := permission.NewGrant(rule[0], rule[1], rule[2])
		if err != nil {
			s.logger.Warnw("skipping malformed policy rule", "rule", rule, "error", err)
			continue
		}
		grants = append(grants, grant)
	}

	return grants, nil
}
