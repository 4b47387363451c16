package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/garyjia/gradcheck/internal/config"
	"github.com/garyjia/gradcheck/internal/container"
	"github.com/garyjia/gradcheck/internal/exitcode"
	"github.com/garyjia/gradcheck/internal/terminate"
)

// configPathEnv names an optional YAML configuration file
const configPathEnv = "GRADCHECK_CONFIG"

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv(configPathEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(exitcode.Setup)
	}

	// Initialize logger
	logger, err := container.ProvideLogger(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(exitcode.Setup)
	}

	// Anything escaping from here on ends in the guard
	guard, err := terminate.Install(terminate.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to install terminate guard", zap.Error(err))
	}
	defer guard.Recover()

	os.Exit(run(context.Background(), cfg, logger, guard, os.Stdout))
}

// run performs the graduation check and returns the exit code of the clause
// that handled it
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, guard *terminate.Guard, out io.Writer) int {
	c, err := container.NewContainer(cfg, logger, out)
	if err != nil {
		logger.Error("Failed to create container", zap.Error(err))
		return exitcode.Setup
	}
	if err := c.Start(); err != nil {
		logger.Error("Failed to start container", zap.Error(err))
		return exitcode.Setup
	}
	defer c.Close()

	student := container.ProvideStudent(&cfg.Student)
	defer student.Release()

	outcome, err := c.Graduation().Check(ctx, student)
	if err != nil {
		guard.Check(err)
		return exitcode.Uncaught
	}
	if outcome.Handled {
		return outcome.ExitCode
	}

	fmt.Fprintln(out, "Moving onward with remainder of code.")
	return exitcode.Success
}
