package models

// ReportStatus is the lifecycle state of a report. Values match the
// column values seeded by the municipal schema (1..5).
type ReportStatus int

const (
	StatusSubmitted ReportStatus = iota + 1
	StatusInReview
	StatusInProgress
	StatusResolved
	StatusClosed
)

// Valid reports whether s is a member of the status enumeration.
func (s ReportStatus) Valid() bool {
	return s >= StatusSubmitted && s <= StatusClosed
}

// Resolved reports whether s belongs to the resolution bucket used by
// dashboard aggregation. Everything else counts as pending.
func (s ReportStatus) Resolved() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s ReportStatus) String() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusInReview:
		return "InReview"
	case StatusInProgress:
		return "InProgress"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// AllStatuses returns the closed status set in enumeration order.
func AllStatuses() []ReportStatus {
	return []ReportStatus{
		StatusSubmitted,
		StatusInReview,
		StatusInProgress,
		StatusResolved,
		StatusClosed,
	}
}
