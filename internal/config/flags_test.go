package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	bindings := []FlagBinding{
		{Key: "server.port", Flag: "port"},
		{Key: "server.host", Flag: "host"},
		{Key: "server.tls.mode", Flag: "tls-mode"},
	}
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
		fs.String("port", "", "")
		fs.String("host", "", "")
		fs.String("tls-mode", "", "")
		return fs
	}

	t.Run("only changed flags apply", func(t *testing.T) {
		cfg := defaultConfig(t)
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--port", "9999", "--tls-mode", "server"}))

		require.NoError(t, ApplyFlags(cfg, fs, bindings))
		assert.Equal(t, "9999", cfg.Server.Port)
		assert.Equal(t, "server", cfg.Server.TLS.Mode)
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, "1.2", cfg.Server.TLS.MinVersion)
	})

	t.Run("no flags", func(t *testing.T) {
		cfg := defaultConfig(t)
		require.NoError(t, ApplyFlags(cfg, newFlags(), bindings))
		assert.Equal(t, "8000", cfg.Server.Port)
	})
}
