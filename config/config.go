// Package config reads the settings shared by every winusers entry point
// from the environment.
package config

import (
	"io"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/iamacarpet/go-winusers/identity/user"
)

const envconfigPrefix = "WINUSERS"

// Config holds the WINUSERS_* settings.
type Config struct {
	CreatePolicy  string             `envconfig:"CREATE_POLICY"`
	LogonDomain   string             `envconfig:"LOGON_DOMAIN"`
	LogonType     user.LogonType     `envconfig:"LOGON_TYPE"`
	LogonProvider user.LogonProvider `envconfig:"LOGON_PROVIDER"`
	LogLevel      string             `envconfig:"LOG_LEVEL"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return Config{
		CreatePolicy:  user.CreateAsIs.String(),
		LogonDomain:   user.DefaultLogonOptions.Domain,
		LogonType:     user.DefaultLogonOptions.Type,
		LogonProvider: user.DefaultLogonOptions.Provider,
		LogLevel:      "info",
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults()
	err := envconfig.Process(envconfigPrefix, &c)
	return c, err
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// ManagerOptions converts c into options for user.NewManager.
func (c Config) ManagerOptions(logger *slog.Logger) ([]user.Option, error) {
	policy, err := user.ParseCreatePolicy(c.CreatePolicy)
	if err != nil {
		return nil, err
	}
	if c.LogonType != 0 && !c.LogonType.Valid() {
		return nil, errors.Errorf("invalid logon type %d", uint32(c.LogonType))
	}
	if !c.LogonProvider.Valid() {
		return nil, errors.Errorf("invalid logon provider %d", uint32(c.LogonProvider))
	}
	return []user.Option{
		user.WithLogger(logger),
		user.WithCreatePolicy(policy),
		user.WithLogonDefaults(user.LogonOptions{
			Domain:   c.LogonDomain,
			Type:     c.LogonType,
			Provider: c.LogonProvider,
		}),
	}, nil
}
