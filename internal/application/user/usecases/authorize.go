package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
)

// requireActiveActor loads the calling user and rejects accounts that may
// not act. Authorization runs against the stored role and status, not the
// claims baked into the token.
func requireActiveActor(ctx context.Context, users user.Repository, actorID uint) (*user.User, error) {
	if actorID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("unknown user")
		}
		return nil, err
	}

	if !actor.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is not active")
	}
	return actor, nil
}

// requireAdmin is requireActiveActor plus the admin gate used by the account
// management operations.
func requireAdmin(ctx context.Context, users user.Repository, actorID uint) (*user.User, error) {
	actor, err := requireActiveActor(ctx, users, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role().IsAdmin() {
		return nil, errors.NewForbiddenError("administrator access required")
	}
	return actor, nil
}
