package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils/setutil"
)

// defaultSendTimeout bounds one event's worth of lookups and SMTP calls.
const defaultSendTimeout = 30 * time.Second

// fallbackAuthorName is used when the comment author cannot be resolved.
const fallbackAuthorName = "A participant"

// RequestEmailHandler turns request lifecycle events into emails to the
// people involved. The acting user never receives mail about their own
// action, and a recipient that cannot be resolved is skipped with a log
// line so the remaining recipients still get theirs.
type RequestEmailHandler struct {
	users   UserDirectory
	mailer  Mailer
	logger  logger.Interface
	timeout time.Duration
}

func NewRequestEmailHandler(users UserDirectory, mailer Mailer, logger logger.Interface) *RequestEmailHandler {
	return &RequestEmailHandler{
		users:   users,
		mailer:  mailer,
		logger:  logger,
		timeout: defaultSendTimeout,
	}
}

func (h *RequestEmailHandler) CanHandle(eventType string) bool {
	switch eventType {
	case request.EventTypeRequestAssigned,
		request.EventTypeRequestStatusChanged,
		request.EventTypeCommentAdded:
		return true
	}
	return false
}

func (h *RequestEmailHandler) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	switch e := event.(type) {
	case request.RequestAssignedEvent:
		return h.handleAssigned(ctx, e)
	case request.RequestStatusChangedEvent:
		return h.handleStatusChanged(ctx, e)
	case request.CommentAddedEvent:
		return h.handleCommentAdded(ctx, e)
	default:
		h.logger.Debugw("ignoring event with unexpected payload",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
		)
		return nil
	}
}

func (h *RequestEmailHandler) handleAssigned(ctx context.Context, e request.RequestAssignedEvent) error {
	if e.AssigneeID == e.AssignedBy {
		// Claiming a request yourself needs no notification.
		return nil
	}

	assignee, ok := h.lookupRecipient(ctx, e.AssigneeID)
	if !ok {
		return nil
	}

	if err := h.mailer.SendRequestAssignedEmail(ctx, assignee.Email().String(), e.Number, e.Title); err != nil {
		return fmt.Errorf("assignment email to user %d: %w", e.AssigneeID, err)
	}
	return nil
}

func (h *RequestEmailHandler) handleStatusChanged(ctx context.Context, e request.RequestStatusChangedEvent) error {
	var errs []error
	for _, id := range participantIDs(e.CreatorID, e.AssigneeID, e.ChangedBy) {
		recipient, ok := h.lookupRecipient(ctx, id)
		if !ok {
			continue
		}
		if err := h.mailer.SendRequestStatusChangedEmail(ctx, recipient.Email().String(), e.Number, e.Title, e.OldStatus, e.NewStatus); err != nil {
			errs = append(errs, fmt.Errorf("status email to user %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (h *RequestEmailHandler) handleCommentAdded(ctx context.Context, e request.CommentAddedEvent) error {
	recipients := participantIDs(e.CreatorID, e.AssigneeID, e.AuthorID)
	if len(recipients) == 0 {
		return nil
	}

	authorName := h.authorDisplayName(ctx, e.AuthorID)

	var errs []error
	for _, id := range recipients {
		recipient, ok := h.lookupRecipient(ctx, id)
		if !ok {
			continue
		}
		if err := h.mailer.SendCommentAddedEmail(ctx, recipient.Email().String(), e.Number, e.Title, authorName); err != nil {
			errs = append(errs, fmt.Errorf("comment email to user %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// lookupRecipient loads a recipient account, skipping the ones that cannot
// or should not receive mail. Suspended accounts get no notifications.
func (h *RequestEmailHandler) lookupRecipient(ctx context.Context, userID uint) (*user.User, bool) {
	account, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.logger.Warnw("skipping notification recipient, lookup failed",
			"user_id", userID,
			"error", err,
		)
		return nil, false
	}
	if account == nil {
		h.logger.Warnw("skipping notification recipient, account not found",
			"user_id", userID,
		)
		return nil, false
	}
	if account.Status().IsSuspended() {
		return nil, false
	}
	return account, true
}

func (h *RequestEmailHandler) authorDisplayName(ctx context.Context, userID uint) string {
	account, err := h.users.GetByID(ctx, userID)
	if err != nil || account == nil {
		return fallbackAuthorName
	}
	return account.Name().DisplayName()
}

// participantIDs returns the creator and assignee in that order, minus the
// acting user and duplicates. A nil assignee and the zero ID are skipped.
func participantIDs(creatorID uint, assigneeID *uint, actorID uint) []uint {
	seen := setutil.NewUintSetWithCap(2)
	seen.Add(actorID)
	seen.Add(0)

	candidates := []uint{creatorID}
	if assigneeID != nil {
		candidates = append(candidates, *assigneeID)
	}

	ids := make([]uint, 0, len(candidates))
	for _, id := range candidates {
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		ids = append(ids, id)
	}
	return ids
}
