package config

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks cfg against its struct tags, mirroring the pack's
// go-playground/validator-based config validation.
func Validate(cfg *Config) error {
	return validate.Struct(cfg)
}
