// Package config handles configuration loading and management for pathpick.
//
// It provides functionality for:
//   - Loading configuration from .pathpick.json, .pathpick.yaml or pathpick.config.json
//   - PATHPICK_* environment variable overrides
//   - Default configuration values and merging of partial configs
package config
