package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamacarpet/go-winusers/identity/user"
)

func TestNewConfigWithDefaults(t *testing.T) {
	c := NewConfigWithDefaults()
	require.Equal(t, "as-is", c.CreatePolicy)
	require.Equal(t, ".", c.LogonDomain)
	require.Equal(t, user.LogonNetwork, c.LogonType)
	require.Equal(t, user.ProviderDefault, c.LogonProvider)
	require.Equal(t, "info", c.LogLevel)
}

func TestGetConfigFromEnvironment(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func(t *testing.T)
		assertions func(Config, error)
	}{
		{
			name:  "defaults",
			setup: func(*testing.T) {},
			assertions: func(c Config, err error) {
				require.NoError(t, err)
				require.Equal(t, NewConfigWithDefaults(), c)
			},
		},
		{
			name: "overrides",
			setup: func(t *testing.T) {
				t.Setenv("WINUSERS_CREATE_POLICY", "inject-normal")
				t.Setenv("WINUSERS_LOGON_DOMAIN", "WORKGROUP")
				t.Setenv("WINUSERS_LOGON_TYPE", "2")
				t.Setenv("WINUSERS_LOGON_PROVIDER", "3")
				t.Setenv("WINUSERS_LOG_LEVEL", "debug")
			},
			assertions: func(c Config, err error) {
				require.NoError(t, err)
				require.Equal(
					t,
					Config{
						CreatePolicy:  "inject-normal",
						LogonDomain:   "WORKGROUP",
						LogonType:     user.LogonInteractive,
						LogonProvider: user.ProviderWinNT50,
						LogLevel:      "debug",
					},
					c,
				)
			},
		},
		{
			name: "unparsable logon type",
			setup: func(t *testing.T) {
				t.Setenv("WINUSERS_LOGON_TYPE", "network")
			},
			assertions: func(_ Config, err error) {
				require.Error(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.setup(t)
			c, err := GetConfigFromEnvironment()
			testCase.assertions(c, err)
		})
	}
}

func TestManagerOptions(t *testing.T) {
	c := NewConfigWithDefaults()
	opts, err := c.ManagerOptions(nil)
	require.NoError(t, err)
	require.Len(t, opts, 3)
	require.NotNil(t, user.NewManager(nil, nil, nil, opts...))

	c.CreatePolicy = "sometimes"
	_, err = c.ManagerOptions(nil)
	require.Error(t, err)

	c = NewConfigWithDefaults()
	c.LogonType = 6
	_, err = c.ManagerOptions(nil)
	require.Error(t, err)

	c = NewConfigWithDefaults()
	c.LogonProvider = 9
	_, err = c.ManagerOptions(nil)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	c := NewConfigWithDefaults()
	c.LogLevel = "warn"
	buf := &bytes.Buffer{}
	logger, err := c.NewLogger(buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	c.LogLevel = "DEBUG"
	level, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	c.LogLevel = "chatty"
	_, err = c.NewLogger(buf)
	require.Error(t, err)
}
