package container

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/garyjia/gradcheck/internal/application/dispatcher"
	"github.com/garyjia/gradcheck/internal/application/service"
	"github.com/garyjia/gradcheck/internal/config"
	"github.com/garyjia/gradcheck/internal/domain/entity"
	"github.com/garyjia/gradcheck/pkg/utils"
)

// ProvideLogger creates the zap logger from configuration
func ProvideLogger(cfg *config.LoggerConfig) (*zap.Logger, error) {
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Level,
		OutputPath: cfg.OutputPath,
		Format:     cfg.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// ProvideCascade creates the graduation cascade printing to out
func ProvideCascade(out io.Writer, reg prometheus.Registerer, logger *zap.Logger) (dispatcher.Cascade, error) {
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}

	opts := []dispatcher.Option{
		dispatcher.WithLogger(&zapLoggerAdapter{logger: logger.Named("cascade")}),
	}
	if reg != nil {
		opts = append(opts, dispatcher.WithMetrics(reg))
	}

	cascade := service.NewGraduationCascade(out, opts...)

	logger.Debug("Cascade created", zap.Int("clauses", len(cascade.ListClauses())))
	return cascade, nil
}

// ProvideGraduationService creates the graduation service
func ProvideGraduationService(cascade dispatcher.Cascade, logger *zap.Logger) (service.GraduationService, error) {
	if cascade == nil {
		return nil, fmt.Errorf("cascade is required")
	}
	return service.NewGraduationService(cascade, &zapLoggerAdapter{logger: logger.Named("graduation")}), nil
}

// ProvideStudent creates the configured student. The caller owns it and
// must Release it.
func ProvideStudent(cfg *config.StudentConfig) *entity.Student {
	return entity.NewStudent(
		cfg.FirstName,
		cfg.LastName,
		cfg.Initial(),
		cfg.Title,
		cfg.GPA,
		cfg.Course,
		cfg.ID,
	)
}
