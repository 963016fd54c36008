package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVault map[string]map[string]any

func (f fakeVault) GetSecretV2(path string) (*VaultSecret, error) {
	data, ok := f[path]
	if !ok {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}
	return &VaultSecret{Data: data, Version: 1}, nil
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    int64
		expectError bool
	}{
		{name: "int64 value", input: int64(42), expected: 42},
		{name: "float64 value", input: float64(42.0), expected: 42},
		{name: "string value", input: "42", expected: 42},
		{name: "invalid string value", input: "not-a-number", expectError: true},
		{name: "unsupported type", input: []string{"42"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, "test/path")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDecodeKVv2(t *testing.T) {
	secret, err := decodeKVv2(map[string]any{
		"data":     map[string]any{"secret": "value"},
		"metadata": map[string]any{"version": "3"},
	}, "secret/data/x")
	require.NoError(t, err)
	assert.Equal(t, int64(3), secret.Version)
	assert.Equal(t, "value", secret.Data["secret"])

	_, err = decodeKVv2(map[string]any{"secret": "value"}, "secret/data/x")
	assert.ErrorContains(t, err, "missing 'data' field")

	_, err = decodeKVv2(map[string]any{"data": map[string]any{}}, "secret/data/x")
	assert.ErrorContains(t, err, "missing 'metadata' field")
}

func TestResolveVaultToken(t *testing.T) {
	token, err := resolveVaultToken(VaultConfig{Token: "direct-token"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "direct-token", token)

	tokenFile := filepath.Join(t.TempDir(), "vault-token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token  \n"), 0o600))
	token, err = resolveVaultToken(VaultConfig{TokenFile: tokenFile}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)

	_, err = resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"}, nil)
	assert.ErrorContains(t, err, "failed to read vault token file")

	_, err = resolveVaultToken(VaultConfig{}, nil)
	assert.ErrorContains(t, err, "vault token is required")
}

func TestApplySecrets(t *testing.T) {
	vault := fakeVault{
		"secret/data/api":    {"keys": "k1, k2"},
		"secret/data/jwt":    {"secret": "jwt-secret-from-vault"},
		"secret/data/db":     {"url": "postgres://vault/hireup"},
		"secret/data/github": {"token": "ghp_token"},
		"secret/data/tls":    {"cert": "CERT", "key": "KEY"},
	}

	cfg := &Config{}
	cfg.Auth.JWTSecret = "from-file"
	cfg.Vault.Secrets = VaultSecrets{
		APIKeys:     "secret/data/api",
		JWTSecret:   "secret/data/jwt",
		DatabaseURL: "secret/data/db",
		GitHubToken: "secret/data/github",
		TLSCerts:    "secret/data/tls",
	}

	require.NoError(t, applySecrets(vault, cfg, nil))
	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
	assert.Equal(t, "jwt-secret-from-vault", cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres://vault/hireup", cfg.Database.URL)
	assert.Equal(t, "ghp_token", cfg.GitHub.Token)
	assert.Equal(t, "CERT", cfg.Server.TLS.CertContent)
	assert.Equal(t, "KEY", cfg.Server.TLS.KeyContent)
	assert.Empty(t, cfg.Server.TLS.CAContent)
}

func TestApplySecretsErrors(t *testing.T) {
	cfg := &Config{}
	cfg.Vault.Secrets.JWTSecret = "secret/data/missing"
	err := applySecrets(fakeVault{}, cfg, nil)
	assert.ErrorContains(t, err, "failed to load JWT secret from vault")

	cfg = &Config{}
	cfg.Vault.Secrets.GitHubToken = "secret/data/github"
	err = applySecrets(fakeVault{"secret/data/github": {"token": 42}}, cfg, nil)
	assert.ErrorContains(t, err, "is not a string")
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWTSecret = "unchanged"
	require.NoError(t, ApplyVaultSecrets(cfg, nil))
	assert.Equal(t, "unchanged", cfg.Auth.JWTSecret)
}

func TestLoadTLSCertificateContent(t *testing.T) {
	var tls TLSConfig
	n := loadTLSCertificateContent(&tls, &VaultSecret{Data: map[string]any{"cert": "C", "key": "K", "ca": "A"}})
	assert.Equal(t, 3, n)
	assert.Equal(t, "A", tls.CAContent)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "abcd****mnop", maskSecret("abcdefghijklmnop"))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "", maskSecret(""))
}
