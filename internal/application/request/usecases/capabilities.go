package usecases

import (
	"context"
	"encoding/json"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
)

// requireActiveActor loads the calling user and rejects accounts that may
// not act (pending verification or suspended). Every usecase authorizes
// against the actor's current role, not the role baked into the token.
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

// evaluateCapabilities resolves the actor's relationship to the request and
// runs the capability evaluator.
func evaluateCapabilities(actor *user.User, req *request.Request) authorization.Capabilities {
	return authorization.EvaluateRequestCapabilities(
		actor.Role(),
		req.IsCreator(actor.ID()),
		req.IsAssignee(actor.ID()),
		req.Status().String(),
	)
}

// activityValue encodes one audit field as the JSON object stored in the
// activity old/new columns, e.g. {"status":"new"}.
func activityValue(field string, value any) *string {
	b, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
