package types

import "strings"

// MilestoneStatus is the progress state recorded on a milestone.
type MilestoneStatus string

// Milestone states, stored with their display spelling.
const (
	StatusInProgress MilestoneStatus = "In Progress"
	StatusCompleted  MilestoneStatus = "Completed"
	StatusPending    MilestoneStatus = "Pending"
)

// MilestoneStatuses lists the recognized states in display order.
var MilestoneStatuses = []MilestoneStatus{
	StatusInProgress,
	StatusCompleted,
	StatusPending,
}

// ParseMilestoneStatus resolves user input to a MilestoneStatus. Case,
// spaces, hyphens, and underscores are ignored, so "InProgress",
// "in-progress", and "In Progress" all match. Returns a *ValidationError
// wrapping ErrInvalidStatus when nothing matches.
func ParseMilestoneStatus(s string) (MilestoneStatus, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	switch key {
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	case "pending":
		return StatusPending, nil
	}
	return "", &ValidationError{Category: CategoryMilestone, Field: FieldStatus, Err: ErrInvalidStatus}
}
