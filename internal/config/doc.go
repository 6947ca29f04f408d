// Package config provides configuration management for fetchdocs.
// It defines default values, CLI-facing settings, the optional .fetchdocs
// YAML configuration file, and validation of the combined result.
package config
