package eventservice

import (
	"fmt"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// InvalidTransitionError reports an illegal event status change.
type InvalidTransitionError struct {
	From sharedtypes.EventStatus
	To   sharedtypes.EventStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition event from %q to %q", e.From, e.To)
}

// InvalidProgramError reports a program configuration that violates the
// category/team rules. The message names the offending field so admins can
// act on it.
type InvalidProgramError struct {
	Reason string
}

func (e *InvalidProgramError) Error() string {
	return "invalid program configuration: " + e.Reason
}
