package valueobjects

import "fmt"

type Status string

const (
	StatusNew         Status = "new"
	StatusInProgress  Status = "in_progress"
	StatusUnderReview Status = "under_review"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusNew:         true,
	StatusInProgress:  true,
	StatusUnderReview: true,
	StatusCompleted:   true,
	StatusRejected:    true,
}

// statusTransitions is the full lifecycle graph. Completed requests can be
// reopened into in_progress; rejected requests go back through new.
var statusTransitions = map[Status][]Status{
	StatusNew: {
		StatusInProgress,
		StatusUnderReview,
		StatusCompleted,
		StatusRejected,
	},
	StatusInProgress: {
		StatusUnderReview,
		StatusCompleted,
		StatusRejected,
	},
	StatusUnderReview: {
		StatusInProgress,
		StatusCompleted,
		StatusRejected,
	},
	StatusCompleted: {
		StatusInProgress,
	},
	StatusRejected: {
		StatusNew,
	},
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the request has reached an end state. Terminal
// requests are excluded from overdue calculations.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

func (s Status) IsNew() bool {
	return s == StatusNew
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsUnderReview() bool {
	return s == StatusUnderReview
}

func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

func (s Status) IsRejected() bool {
	return s == StatusRejected
}

// AllStatuses returns every valid status, for filter validation and stats.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusUnderReview, StatusCompleted, StatusRejected}
}
