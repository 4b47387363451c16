// Package terminate installs the process-wide fallback for payloads that
// escape every dispatch cascade.
//
// The guard is installed once at process start and lives for the rest of the
// process. Its only job is to report the escape and end the process.
package terminate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/garyjia/gradcheck/internal/domain/failure"
	"github.com/garyjia/gradcheck/internal/exitcode"
)

// Message is printed when the guard terminates the process
const Message = "Uncaught exception. Program terminating"

// ErrAlreadyInstalled is returned by a second Install
var ErrAlreadyInstalled = errors.New("terminate guard already installed")

var (
	installMu sync.Mutex
	installed *Guard
)

// Guard terminates the process when a payload escapes
type Guard struct {
	out    io.Writer
	exit   func(int)
	logger *zap.Logger
	once   sync.Once
}

// Option configures the guard
type Option func(*Guard)

// WithOutput sets where the terminate message is printed
func WithOutput(w io.Writer) Option {
	return func(g *Guard) {
		g.out = w
	}
}

// WithExit replaces os.Exit
func WithExit(exit func(int)) Option {
	return func(g *Guard) {
		g.exit = exit
	}
}

// WithLogger sets a logger for the guard
func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// Install registers the process guard. Only the first call succeeds.
func Install(opts ...Option) (*Guard, error) {
	installMu.Lock()
	defer installMu.Unlock()

	if installed != nil {
		return installed, ErrAlreadyInstalled
	}

	installed = New(opts...)
	return installed, nil
}

// Installed returns the process guard, or nil before Install
func Installed() *Guard {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// New creates a guard without installing it as the process guard
func New(opts ...Option) *Guard {
	g := &Guard{
		out:    os.Stdout,
		exit:   os.Exit,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check terminates the process if err is non-nil
func (g *Guard) Check(err error) {
	if err == nil {
		return
	}
	g.terminate(failure.Raise(err))
}

// Recover terminates the process if a panic is unwinding. It must be
// deferred directly.
func (g *Guard) Recover() {
	if r := recover(); r != nil {
		g.terminate(failure.Raise(r))
	}
}

// terminate prints Message and exits. Later calls are ignored, which also
// covers an exit func that returns.
func (g *Guard) terminate(sig *failure.Signal) {
	g.once.Do(func() {
		g.logger.Error("Uncaught payload",
			zap.String("signal_id", sig.ID),
			zap.String("kind", sig.Kind().String()),
			zap.Error(sig),
		)
		fmt.Fprintln(g.out, Message)
		g.exit(exitcode.Uncaught)
	})
}
