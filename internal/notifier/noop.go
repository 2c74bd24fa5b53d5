package notifier

import "github.com/bugboard/bugboard/internal/database/types"

// Noop discards every notification. Used by tooling that needs a
// database client but never moderates anyone.
type Noop struct{}

// NotifyBan does nothing.
func (Noop) NotifyBan(*types.User, string) {}

// NotifyUnban does nothing.
func (Noop) NotifyUnban(*types.User) {}
