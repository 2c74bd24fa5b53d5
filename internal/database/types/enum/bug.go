package enum

import (
	"fmt"
	"strings"
)

// BugStatus tracks where a bug is in its lifecycle. A bug starts as
// received, moves to in_progress when its first comment arrives, and
// ends as solved. Solved is terminal.
type BugStatus string

const (
	BugStatusReceived   BugStatus = "received"
	BugStatusInProgress BugStatus = "in_progress"
	BugStatusSolved     BugStatus = "solved"
)

// ParseBugStatus normalizes a status string. The spaced form
// "in progress" is accepted as it appears in display output.
func ParseBugStatus(s string) (BugStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "received":
		return BugStatusReceived, nil
	case "in_progress", "in progress":
		return BugStatusInProgress, nil
	case "solved":
		return BugStatusSolved, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBugStatus, s)
	}
}

func (s BugStatus) String() string {
	return string(s)
}

// Display renders the status for human-facing output.
func (s BugStatus) Display() string {
	switch s {
	case BugStatusReceived:
		return "Received"
	case BugStatusInProgress:
		return "In progress"
	case BugStatusSolved:
		return "Solved"
	default:
		return string(s)
	}
}
