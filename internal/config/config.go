package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/garyjia/gradcheck/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. GRADCHECK_STUDENT_GPA
const EnvPrefix = "GRADCHECK"

// Config holds all application configuration
type Config struct {
	Student StudentConfig `mapstructure:"student"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// StudentConfig describes the student the check runs against
type StudentConfig struct {
	FirstName     string  `mapstructure:"first_name"`
	LastName      string  `mapstructure:"last_name"`
	MiddleInitial string  `mapstructure:"middle_initial"`
	Title         string  `mapstructure:"title"`
	GPA           float32 `mapstructure:"gpa"`
	Course        string  `mapstructure:"course"`
	ID            string  `mapstructure:"id"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Initial returns the middle initial as a rune, or 0 when unset
func (s StudentConfig) Initial() rune {
	r, _ := utf8.DecodeRuneInString(s.MiddleInitial)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// Load loads configuration from an optional file and environment variables.
// An empty configPath uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Student defaults
	v.SetDefault("student.first_name", "Ling")
	v.SetDefault("student.last_name", "Mau")
	v.SetDefault("student.middle_initial", "I")
	v.SetDefault("student.title", "Ms.")
	v.SetDefault("student.gpa", 3.1)
	v.SetDefault("student.course", "C++")
	v.SetDefault("student.id", "55UD")

	// Logger defaults. stdout carries the check's own output.
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := utils.ValidateStudentID(c.Student.ID); err != nil {
		return fmt.Errorf("student.id: %w", err)
	}
	if err := utils.ValidateInitial(c.Student.MiddleInitial); err != nil {
		return fmt.Errorf("student.middle_initial: %w", err)
	}
	if err := utils.ValidateGPA(c.Student.GPA); err != nil {
		return fmt.Errorf("student.gpa: %w", err)
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console")
	}
	if c.Logger.OutputPath == "stdout" {
		return fmt.Errorf("logger.output_path must not be stdout")
	}

	return nil
}
