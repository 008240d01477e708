package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"nvimcmd/internal/config"
	"nvimcmd/internal/driver"
	"nvimcmd/internal/editor"
	"nvimcmd/internal/logging"
)

type globalFlags struct {
	address   string
	config    string
	logLevel  string
	logFormat string
}

// editorSession is what a subcommand needs from a dialed editor.
type editorSession interface {
	driver.Editor
	Close() error
}

type dialFunc func(ctx context.Context, address string, opts editor.Options) (editorSession, error)

func dialEditor(ctx context.Context, address string, opts editor.Options) (editorSession, error) {
	session, err := editor.Dial(ctx, address, opts)
	if err != nil {
		return nil, err
	}
	return session, nil
}

type commandContext struct {
	flags     *globalFlags
	dial      dialFunc
	lookupEnv func(string) (string, bool)

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags, dial dialFunc, lookupEnv func(string) (string, bool)) *commandContext {
	return &commandContext{
		flags:     flags,
		dial:      dial,
		lookupEnv: lookupEnv,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger(ctx context.Context) (context.Context, *slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.flags.logLevel)
	})
	if c.loggerErr != nil {
		return ctx, nil, c.loggerErr
	}
	ctx = logging.WithCorrelationID(ctx, logging.NewCorrelationID())
	return ctx, logging.WithContext(ctx, c.logger), nil
}

// resolveAddress picks the editor address: --address, then editor.address,
// then the first set variable in editor.address_envs.
func (c *commandContext) resolveAddress(cfg *config.Config) (string, string, error) {
	if address := strings.TrimSpace(c.flags.address); address != "" {
		return address, "--address", nil
	}
	if cfg.Editor.Address != "" {
		return cfg.Editor.Address, "editor.address", nil
	}
	return editor.LookupAddress(cfg.Editor.AddressEnvs, c.lookupEnv)
}

// withDriver dials the editor and runs fn with a driver bound to the session.
// No dial is attempted when the address cannot be resolved.
func (c *commandContext) withDriver(cmd *cobra.Command, fn func(context.Context, *driver.Driver) error, tune ...func(*driver.Options)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ctx, logger, err := c.ensureLogger(cmd.Context())
	if err != nil {
		return err
	}

	address, source, err := c.resolveAddress(cfg)
	if err != nil {
		return err
	}
	logger.Debug("editor address resolved",
		logging.String(logging.FieldAddress, address),
		logging.String("source", source),
	)

	session, err := c.dial(ctx, address, editor.Options{
		DialTimeout: cfg.DialTimeout(),
		CallTimeout: cfg.CallTimeout(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	opts := driver.Options{
		WaitTimeout:  cfg.WaitTimeout(),
		DetachOnExit: cfg.Wait.DetachOnExit,
		Logger:       logger,
	}
	for _, t := range tune {
		t(&opts)
	}
	return fn(ctx, driver.New(session, opts))
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
