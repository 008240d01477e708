package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateWait(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditor() error {
	if len(c.Editor.AddressEnvs) == 0 {
		return errors.New("editor.address_envs must include at least one variable name")
	}
	if c.Editor.DialTimeout <= 0 {
		return errors.New("editor.dial_timeout must be positive (seconds)")
	}
	if c.Editor.CallTimeout < 0 {
		return errors.New("editor.call_timeout must be >= 0 (seconds)")
	}
	return nil
}

func (c *Config) validateWait() error {
	if c.Wait.Timeout < 0 {
		return errors.New("wait.timeout must be >= 0 (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}
