// Package config loads and validates the epsync TOML configuration. A missing
// config file is not an error; defaults apply so the tool works out of the box.
package config
