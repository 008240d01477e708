package config

import "time"

const (
	defaultAddressEnv       = "NVIM_LISTEN_ADDRESS"
	fallbackAddressEnv      = "NVIM"
	defaultDialTimeout      = 2
	defaultCallTimeout      = 0
	defaultWaitTimeout      = 0
	defaultDetachOnExit     = true
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
	defaultConfigPathSuffix = "~/.config/nvimcmd/config.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Editor: Editor{
			AddressEnvs: []string{defaultAddressEnv, fallbackAddressEnv},
			DialTimeout: defaultDialTimeout,
			CallTimeout: defaultCallTimeout,
		},
		Wait: Wait{
			Timeout:      defaultWaitTimeout,
			DetachOnExit: defaultDetachOnExit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func seconds(value int) time.Duration {
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}
