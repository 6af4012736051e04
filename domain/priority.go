package domain

// Priority is the closed set of urgency levels a task can carry.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the sort rank of the priority, higher meaning more urgent.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Label returns the human-readable form used in transport payloads and logs.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ParsePriority maps a transport string onto a Priority. Empty input falls
// back to PriorityMedium, anything else is rejected.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "":
		return PriorityMedium, nil
	case string(PriorityHigh), "High", "HIGH":
		return PriorityHigh, nil
	case string(PriorityMedium), "Medium", "MEDIUM":
		return PriorityMedium, nil
	case string(PriorityLow), "Low", "LOW":
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}
