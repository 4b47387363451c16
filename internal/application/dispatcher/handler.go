package dispatcher

import (
	"context"

	"github.com/garyjia/gradcheck/internal/domain/failure"
)

// Handler processes a signaled payload. Its error reports a failure of the
// handler itself, not of the operation that raised the payload.
type Handler func(ctx context.Context, sig *failure.Signal) error

// ClauseInfo contains clause metadata for debugging
type ClauseInfo struct {
	Name     string
	Kind     failure.Kind
	ExitCode int
	CatchAll bool
	Handler  Handler
}

// Outcome reports which clause handled a payload
type Outcome struct {
	Handled  bool
	Clause   string
	ExitCode int
	Signal   *failure.Signal
}
