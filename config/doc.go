// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Unset values fall back to defaults tuned for the Madrid CRTM networks.
package config
