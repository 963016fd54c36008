package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"hireup/internal/errors"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets defines where to find secrets in Vault. Each value is a KVv2
// read path such as "secret/data/hireup/jwt"; empty paths are skipped.
type VaultSecrets struct {
	APIKeys     string `mapstructure:"apiKeys"`     // key "keys", comma-separated
	JWTSecret   string `mapstructure:"jwtSecret"`   // key "secret"
	DatabaseURL string `mapstructure:"databaseURL"` // key "url"
	GitHubToken string `mapstructure:"githubToken"` // key "token"
	TLSCerts    string `mapstructure:"tlsCerts"`    // keys "cert", "key", "ca"
}

// VaultSecret represents a secret read from Vault's KVv2 engine.
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

type secretReader interface {
	GetSecretV2(path string) (*VaultSecret, error)
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	logger *errors.Logger
}

// NewVaultClient creates a new Vault client from configuration. It returns
// nil when Vault is disabled.
func NewVaultClient(config VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if !config.Enabled {
		logger.Debug("Vault integration disabled")
		return nil, nil
	}

	apiConfig := api.DefaultConfig()
	if config.Address != "" {
		apiConfig.Address = config.Address
	}
	client, err := api.NewClient(apiConfig)
	if err != nil {
		logger.LogError(err, "Failed to create Vault client")
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	token, err := resolveVaultToken(config, logger)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		logger.LogError(err, "Failed to connect to Vault", "address", config.Address)
		return nil, fmt.Errorf("failed to connect to vault: %w", err)
	}
	logger.Info("Successfully connected to Vault",
		"address", config.Address,
		"version", health.Version,
		"sealed", health.Sealed)

	return &VaultClient{client: client, logger: logger}, nil
}

// resolveVaultToken resolves the Vault token from config or file
func resolveVaultToken(config VaultConfig, logger *errors.Logger) (string, error) {
	token := config.Token

	if token == "" && config.TokenFile != "" {
		tokenBytes, err := os.ReadFile(config.TokenFile)
		if err != nil {
			logger.LogError(err, "Failed to read Vault token file", "file", config.TokenFile)
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(tokenBytes))
	}

	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}
	return token, nil
}

// GetSecretV2 retrieves a secret from a Vault KVv2 store.
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}
	return decodeKVv2(secret.Data, path)
}

// decodeKVv2 unpacks the data and metadata.version fields of a KVv2 read.
func decodeKVv2(raw map[string]any, path string) (*VaultSecret, error) {
	data, ok := raw["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}
	metadata, ok := raw["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'metadata' field)", path)
	}
	versionRaw, ok := metadata["version"]
	if !ok {
		return nil, fmt.Errorf("secret metadata at %s is missing 'version' field", path)
	}
	version, err := parseVersionValue(versionRaw, path)
	if err != nil {
		return nil, err
	}
	return &VaultSecret{Data: data, Version: version}, nil
}

// parseVersionValue parses version value from various types
func parseVersionValue(versionRaw any, path string) (int64, error) {
	switch v := versionRaw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected type for version at %s: %T", path, versionRaw)
	}
}

func readString(r secretReader, path, key string) (string, error) {
	secret, err := r.GetSecretV2(path)
	if err != nil {
		return "", err
	}
	value, ok := secret.Data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}
	return str, nil
}

func maskSecret(value string) string {
	switch {
	case len(value) > 8:
		return value[:4] + "****" + value[len(value)-4:]
	case value != "":
		return "****"
	default:
		return ""
	}
}

// ApplyVaultSecrets loads secrets from Vault and applies them to the config
func ApplyVaultSecrets(config *Config, logger *errors.Logger) error {
	if !config.Vault.Enabled {
		logger.Debug("Vault integration disabled, skipping secret loading")
		return nil
	}

	client, err := NewVaultClient(config.Vault, logger)
	if err != nil {
		logger.LogError(err, "Failed to initialize Vault client")
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	return applySecrets(client, config, logger)
}

func applySecrets(r secretReader, config *Config, logger *errors.Logger) error {
	paths := config.Vault.Secrets

	if paths.APIKeys != "" {
		keys, err := readString(r, paths.APIKeys, "keys")
		if err != nil {
			return fmt.Errorf("failed to load API keys from vault: %w", err)
		}
		if parsed := splitList([]string{keys}); len(parsed) > 0 {
			config.Server.APIKeys = parsed
			logger.Info("API keys loaded from Vault", "count", len(parsed))
		} else {
			logger.Warn("No API keys found in Vault", "path", paths.APIKeys)
		}
	}

	bindings := []struct {
		name   string
		path   string
		key    string
		target *string
	}{
		{"JWT secret", paths.JWTSecret, "secret", &config.Auth.JWTSecret},
		{"database URL", paths.DatabaseURL, "url", &config.Database.URL},
		{"GitHub token", paths.GitHubToken, "token", &config.GitHub.Token},
	}
	for _, b := range bindings {
		if b.path == "" {
			continue
		}
		value, err := readString(r, b.path, b.key)
		if err != nil {
			return fmt.Errorf("failed to load %s from vault: %w", b.name, err)
		}
		if value == "" {
			logger.Warn("Empty secret found in Vault", "secret", b.name, "path", b.path)
			continue
		}
		*b.target = value
		logger.Debug("Secret loaded from Vault", "secret", b.name, "masked_value", maskSecret(value))
	}

	if paths.TLSCerts != "" {
		tlsData, err := r.GetSecretV2(paths.TLSCerts)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificates from vault: %w", err)
		}
		loaded := loadTLSCertificateContent(&config.Server.TLS, tlsData)
		logger.Info("TLS certificates loaded from Vault", "certificates_loaded", loaded)
	}

	return nil
}

// loadTLSCertificateContent copies PEM content from a Vault secret and
// reports how many fields were set.
func loadTLSCertificateContent(tls *TLSConfig, tlsData *VaultSecret) int {
	fields := []struct {
		key    string
		target *string
	}{
		{"cert", &tls.CertContent},
		{"key", &tls.KeyContent},
		{"ca", &tls.CAContent},
	}

	count := 0
	for _, f := range fields {
		if content, ok := tlsData.Data[f.key].(string); ok && content != "" {
			*f.target = content
			count++
		}
	}
	return count
}
