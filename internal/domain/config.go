package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LogMode selects the zap preset.
type LogMode string

const (
	LogModeDevelopment LogMode = "development"
	LogModeProduction  LogMode = "production"
)

// ValidLogLevels enumerates the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds session policy loaded from .minimart.yaml.
type Config struct {
	// MinComboSize is the smallest combination size the engine accepts.
	MinComboSize int `yaml:"min_combo_size" json:"min_combo_size" validate:"gte=1"`
	// ConfirmAbove gates enumeration: selecting more products than this
	// requires explicit confirmation.
	ConfirmAbove int `yaml:"confirm_above"  json:"confirm_above"  validate:"gte=1"`
	// MaxGenerate caps sample-data regeneration.
	MaxGenerate int       `yaml:"max_generate"   json:"max_generate"   validate:"gte=1,lte=1000000"`
	Log         LogConfig `yaml:"log"            json:"log"`
}

type LogConfig struct {
	Mode  LogMode `yaml:"mode"  json:"mode"  validate:"omitempty,oneof=development production"`
	Level string  `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns the policy used when no config file exists.
func DefaultConfig() Config {
	return Config{
		MinComboSize: 1,
		ConfirmAbove: 20,
		MaxGenerate:  9999,
		Log: LogConfig{
			Mode:  LogModeDevelopment,
			Level: "warn",
		},
	}
}

var configValidate = validator.New()

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "MinComboSize":
		return fmt.Errorf("min_combo_size must be >= 1 (got %v)", fe.Value())
	case "ConfirmAbove":
		return fmt.Errorf("confirm_above must be >= 1 (got %v)", fe.Value())
	case "MaxGenerate":
		return fmt.Errorf("max_generate must be between 1 and 1000000 (got %v)", fe.Value())
	case "Mode":
		return fmt.Errorf("unknown log.mode %q (valid: development, production)", fe.Value())
	case "Level":
		return fmt.Errorf("unknown log.level %q (valid: %s)", fe.Value(), strings.Join(ValidLogLevels, ", "))
	}
	return fmt.Errorf("invalid %s: failed %q", fe.Namespace(), fe.Tag())
}
