package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/logger"
)

// UserEmailHandler notifies accounts about administrative actions taken on
// them. Verification and password mail is sent inline by the user usecases,
// not from events, so it is not handled here.
type UserEmailHandler struct {
	mailer  Mailer
	logger  logger.Interface
	timeout time.Duration
}

func NewUserEmailHandler(mailer Mailer, logger logger.Interface) *UserEmailHandler {
	return &UserEmailHandler{
		mailer:  mailer,
		logger:  logger,
		timeout: defaultSendTimeout,
	}
}

func (h *UserEmailHandler) CanHandle(eventType string) bool {
	return eventType == user.EventTypeUserSuspended
}

func (h *UserEmailHandler) Handle(event events.DomainEvent) error {
	e, ok := event.(user.UserSuspendedEvent)
	if !ok {
		h.logger.Debugw("ignoring event with unexpected payload",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.mailer.SendAccountSuspendedEmail(ctx, e.Email); err != nil {
		return fmt.Errorf("suspension email to user %d: %w", e.UserID, err)
	}
	return nil
}
