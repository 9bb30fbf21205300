package notification

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/logger"
)

// RegisterHandlers subscribes the email handlers to every event type they
// consume. Call before the dispatcher starts.
func RegisterHandlers(subscriber events.EventSubscriber, users UserDirectory, mailer Mailer, log logger.Interface) error {
	requestHandler := NewRequestEmailHandler(users, mailer, log)
	for _, eventType := range []string{
		request.EventTypeRequestAssigned,
		request.EventTypeRequestStatusChanged,
		request.EventTypeCommentAdded,
	} {
		if err := subscriber.Subscribe(eventType, requestHandler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}

	userHandler := NewUserEmailHandler(mailer, log)
	if err := subscriber.Subscribe(user.EventTypeUserSuspended, userHandler); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", user.EventTypeUserSuspended, err)
	}
	return nil
}
