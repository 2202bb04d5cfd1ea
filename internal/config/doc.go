// Package config loads and validates the gateway configuration from YAML,
// with ${VAR} environment expansion and duration-string parsing.
package config
