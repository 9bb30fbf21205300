// Package notification subscribes email side effects to domain events.
// Handlers run on dispatcher goroutines; returned errors are logged by the
// dispatcher and never reach the operation that published the event.
package notification

import (
	"context"

	"github.com/reque-io/reque/internal/domain/user"
)

// Mailer sends lifecycle notification emails. Implementations must be safe
// for concurrent use because handlers run on dispatcher goroutines.
type Mailer interface {
	SendRequestAssignedEmail(ctx context.Context, to, number, title string) error
	SendRequestStatusChangedEmail(ctx context.Context, to, number, title, oldStatus, newStatus string) error
	SendCommentAddedEmail(ctx context.Context, to, number, title, authorName string) error
	SendAccountSuspendedEmail(ctx context.Context, to string) error
}

// UserDirectory resolves notification recipients by ID.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}
