package valueobjects

import "fmt"

// Status is the account lifecycle state. Pending accounts have not verified
// their email yet; suspended accounts keep their data but cannot sign in.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

var validStatuses = map[Status]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusSuspended: true,
}

// statusTransitions is the account lifecycle graph. Suspended accounts can
// only be reinstated to active, never back to pending.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusActive, StatusSuspended},
	StatusActive:    {StatusSuspended},
	StatusSuspended: {StatusActive},
}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !validStatuses[status] {
		return "", fmt.Errorf("invalid user status: %s", value)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanPerformActions reports whether the account may authenticate and act.
func (s Status) CanPerformActions() bool {
	return s == StatusActive
}

// RequiresVerification reports whether the account still needs email
// verification before it becomes active.
func (s Status) RequiresVerification() bool {
	return s == StatusPending
}

func (s Status) IsPending() bool   { return s == StatusPending }
func (s Status) IsActive() bool    { return s == StatusActive }
func (s Status) IsSuspended() bool { return s == StatusSuspended }

// AllStatuses lists every valid status value.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusActive, StatusSuspended}
}
