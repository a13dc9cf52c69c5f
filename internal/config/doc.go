// Package config loads and validates configuration for the WellnessFlow API.
//
// Values are layered with koanf: built-in defaults, then an optional YAML
// file, then WELLNESS_* environment variables.
//
//	cfg, err := config.Load(path)
//	if err == nil {
//		err = cfg.Validate()
//	}
//
// The first underscore after the prefix separates section from key, so
// WELLNESS_AUTH_MAX_LOGIN_ATTEMPTS sets auth.max_login_attempts.
package config
