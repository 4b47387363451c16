package service

import (
	"context"
	"fmt"

	"github.com/garyjia/gradcheck/internal/application/dispatcher"
	"github.com/garyjia/gradcheck/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// GraduationService runs fallible student operations under a cascade
type GraduationService interface {
	// Check runs the graduation eligibility check for a student
	Check(ctx context.Context, student *entity.Student) (dispatcher.Outcome, error)

	// Run runs any fallible operation under the cascade
	Run(ctx context.Context, op string, fn func() error) (dispatcher.Outcome, error)
}

type graduationServiceImpl struct {
	cascade dispatcher.Cascade
	logger  Logger
}

// NewGraduationService creates a new GraduationService
func NewGraduationService(cascade dispatcher.Cascade, logger Logger) GraduationService {
	return &graduationServiceImpl{
		cascade: cascade,
		logger:  logger,
	}
}

// Check runs Graduate. Graduate always signals, so a handled Outcome is the
// expected result.
func (s *graduationServiceImpl) Check(ctx context.Context, student *entity.Student) (dispatcher.Outcome, error) {
	s.logger.Info("Checking graduation eligibility",
		"student_id", student.StudentID(),
		"gpa", student.GPA(),
	)
	return s.Run(ctx, "graduate", student.Graduate)
}

// Run calls fn and hands any error it returns to the cascade
func (s *graduationServiceImpl) Run(ctx context.Context, op string, fn func() error) (dispatcher.Outcome, error) {
	outcome, err := s.cascade.Dispatch(ctx, fn())
	if err != nil {
		s.logger.Error("Cascade failed", "op", op, "error", err)
		return outcome, fmt.Errorf("%s: %w", op, err)
	}

	if outcome.Handled {
		s.logger.Info("Operation failed",
			"op", op,
			"signal_id", outcome.Signal.ID,
			"clause", outcome.Clause,
			"exit_code", outcome.ExitCode,
		)
	}
	return outcome, nil
}
