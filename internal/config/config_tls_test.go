package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name     string
		tls      TLSConfig
		errorMsg string
	}{
		{name: "disabled", tls: TLSConfig{Mode: "disabled"}},
		{name: "server files", tls: TLSConfig{Mode: "server", CertFile: "c.pem", KeyFile: "k.pem"}},
		{name: "server content", tls: TLSConfig{Mode: "server", CertContent: "CERT", KeyContent: "KEY"}},
		{name: "mutual", tls: TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem", CAFile: "ca.pem", ClientAuthPolicy: "verify"}},
		{name: "invalid mode", tls: TLSConfig{Mode: "invalid"}, errorMsg: "invalid TLS mode: invalid"},
		{name: "server without key", tls: TLSConfig{Mode: "server", CertFile: "c.pem"}, errorMsg: "required for server mode"},
		{name: "mutual without ca", tls: TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem"}, errorMsg: "CA certificate is required"},
		{
			name:     "duplicate cert source",
			tls:      TLSConfig{Mode: "server", CertFile: "c.pem", CertContent: "CERT", KeyFile: "k.pem"},
			errorMsg: "both certFile and certContent",
		},
		{
			name:     "duplicate key source",
			tls:      TLSConfig{Mode: "server", CertFile: "c.pem", KeyFile: "k.pem", KeyContent: "KEY"},
			errorMsg: "both keyFile and keyContent",
		},
		{
			name:     "duplicate ca source",
			tls:      TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem", CAFile: "ca.pem", CAContent: "CA"},
			errorMsg: "both caFile and caContent",
		},
		{
			name:     "bad client auth policy",
			tls:      TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem", CAFile: "ca.pem", ClientAuthPolicy: "maybe"},
			errorMsg: "invalid clientAuthPolicy",
		},
		{
			name:     "bad min version",
			tls:      TLSConfig{Mode: "server", CertFile: "c.pem", KeyFile: "k.pem", MinVersion: "1.1"},
			errorMsg: "invalid TLS minVersion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := cfg.ValidateTLSConfig()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}
