// Package config loads, normalizes, and validates nvimcmd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NVIMCMD_LOG_LEVEL. The Config type centralizes every knob the CLI needs:
// which environment variables carry the editor address, how long to wait for
// the socket and for individual RPC calls, how long `edit --wait` may block,
// and where log output goes.
//
// Always obtain settings through this package so commands receive sanitized
// values and clear validation errors.
package config
