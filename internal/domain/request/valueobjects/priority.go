package valueobjects

import "fmt"

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// priorityWeights order priorities for sorting; higher sorts first.
var priorityWeights = map[Priority]int{
	PriorityNormal: 0,
	PriorityHigh:   1,
	PriorityUrgent: 2,
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func (p Priority) Weight() int {
	return priorityWeights[p]
}

func (p Priority) IsNormal() bool {
	return p == PriorityNormal
}

func (p Priority) IsHigh() bool {
	return p == PriorityHigh
}

func (p Priority) IsUrgent() bool {
	return p == PriorityUrgent
}

// AllPriorities returns every valid priority, for filter validation and stats.
func AllPriorities() []Priority {
	return []Priority{PriorityNormal, PriorityHigh, PriorityUrgent}
}
