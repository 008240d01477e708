package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeEditor()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeEditor() {
	c.Editor.Address = strings.TrimSpace(c.Editor.Address)
	envs := make([]string, 0, len(c.Editor.AddressEnvs))
	seen := make(map[string]struct{}, len(c.Editor.AddressEnvs))
	for _, name := range c.Editor.AddressEnvs {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		envs = append(envs, name)
	}
	if len(envs) == 0 {
		envs = []string{defaultAddressEnv, fallbackAddressEnv}
	}
	c.Editor.AddressEnvs = envs
	if c.Editor.DialTimeout == 0 {
		c.Editor.DialTimeout = defaultDialTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("NVIMCMD_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
