package request

import (
	"fmt"
	"time"

	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/biztime"
)

// Activity is one append-only audit record. It has no mutators: records are
// written once, in the same transaction as the change they describe, and
// never touched again.
type Activity struct {
	id           uint
	requestID    uint
	actorID      uint
	activityType vo.ActivityType
	field        string
	oldValue     *string
	newValue     *string
	createdAt    time.Time
}

// NewActivity builds an audit record. field names what changed for types that
// touch a single attribute; oldValue/newValue carry JSON fragments of the
// before/after state.
func NewActivity(
	requestID uint,
	actorID uint,
	activityType vo.ActivityType,
	field string,
	oldValue, newValue *string,
) (*Activity, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	if !activityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", activityType)
	}

	return &Activity{
		requestID:    requestID,
		actorID:      actorID,
		activityType: activityType,
		field:        field,
		oldValue:     oldValue,
		newValue:     newValue,
		createdAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructActivity(
	id uint,
	requestID uint,
	actorID uint,
	activityType vo.ActivityType,
	field string,
	oldValue, newValue *string,
	createdAt time.Time,
) (*Activity, error) {
	if id == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if !activityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", activityType)
	}

	return &Activity{
		id:           id,
		requestID:    requestID,
		actorID:      actorID,
		activityType: activityType,
		field:        field,
		oldValue:     oldValue,
		newValue:     newValue,
		createdAt:    createdAt,
	}, nil
}

func (a *Activity) ID() uint                      { return a.id }
func (a *Activity) RequestID() uint               { return a.requestID }
func (a *Activity) ActorID() uint                 { return a.actorID }
func (a *Activity) ActivityType() vo.ActivityType { return a.activityType }
func (a *Activity) Field() string                 { return a.field }
func (a *Activity) OldValue() *string             { return a.oldValue }
func (a *Activity) NewValue() *string             { return a.newValue }
func (a *Activity) CreatedAt() time.Time          { return a.createdAt }

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = id
	return nil
}
