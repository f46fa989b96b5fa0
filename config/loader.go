package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ekarabulut/failover/errors"
)

const envPrefix = "FAILOVER"

// LoaderOptions controls where Load looks for configuration.
type LoaderOptions struct {
	// ConfigFile is an explicit config file path. When set, search paths
	// are skipped.
	ConfigFile string
	// EnvFile is an optional dotenv file loaded before reading config.
	EnvFile string
	// SearchPaths are directories searched for <name>.yaml when no
	// explicit file is given.
	SearchPaths []string
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *LoaderOptions) { o.ConfigFile = path }
}

// WithEnvFile sets a dotenv file to load before reading config.
func WithEnvFile(path string) LoaderOption {
	return func(o *LoaderOptions) { o.EnvFile = path }
}

// WithSearchPaths overrides the default config search paths.
func WithSearchPaths(paths ...string) LoaderOption {
	return func(o *LoaderOptions) { o.SearchPaths = paths }
}

// Load reads configuration for the named service into cfg. Sources are
// merged in increasing precedence: file values, then FAILOVER_* environment
// variables. A missing config file is not an error; env and defaults still
// apply. The loaded config is defaulted and validated before returning.
func Load(name string, cfg *Config, opts ...LoaderOption) error {
	options := LoaderOptions{
		SearchPaths: []string{".", "./config", "./configs"},
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.EnvFile != "" {
		if err := godotenv.Load(options.EnvFile); err != nil && !os.IsNotExist(err) {
			return errors.InvalidConfig(fmt.Sprintf("loading env file %s: %v", options.EnvFile, err))
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if options.ConfigFile != "" {
		v.SetConfigFile(options.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidConfig(fmt.Sprintf("reading config file %s: %v", options.ConfigFile, err))
		}
	} else {
		v.SetConfigName(name)
		for _, path := range options.SearchPaths {
			v.AddConfigPath(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return errors.InvalidConfig(fmt.Sprintf("reading config: %v", err))
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("unmarshaling config: %v", err))
	}

	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return nil
}

// bindEnvKeys binds the well-known scalar keys so AutomaticEnv picks them
// up even when the config file never mentions them.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"name",
		"environment",
		"logging.level",
		"logging.format",
		"logging.output",
	} {
		_ = v.BindEnv(key)
	}
}
