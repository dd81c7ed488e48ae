package domain

import "fmt"

type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

func (v *ConfigValidator) Validate(cfg *RunConfig) error {
	if cfg.ResultsDir == "" {
		return ErrEmptyResultsDir
	}

	if cfg.BridgePath == "" {
		return ErrEmptyBridgePath
	}

	switch cfg.Format {
	case FormatRaw, FormatJSON, FormatTUI:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	return nil
}
