package user

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/shared/biztime"
)

// Event types
const (
	EventTypeUserRegistered = "user.registered"
	EventTypeUserSuspended  = "user.suspended"
)

type UserRegisteredEvent struct {
	events.BaseEvent
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func NewUserRegisteredEvent(userID uint, email, name, role string) UserRegisteredEvent {
	return UserRegisteredEvent{
		BaseEvent: newBaseEvent(userID, EventTypeUserRegistered),
		UserID:    userID,
		Email:     email,
		Name:      name,
		Role:      role,
	}
}

type UserSuspendedEvent struct {
	events.BaseEvent
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

func NewUserSuspendedEvent(userID uint, email string) UserSuspendedEvent {
	return UserSuspendedEvent{
		BaseEvent: newBaseEvent(userID, EventTypeUserSuspended),
		UserID:    userID,
		Email:     email,
	}
}

func newBaseEvent(userID uint, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: fmt.Sprintf("user:%d", userID),
		EventType:   eventType,
		OccurredAt:  biztime.NowUTC(),
		Version:     1,
	}
}
