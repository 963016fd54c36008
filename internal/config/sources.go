package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks fills values that depend on other settings
func (c *Config) applyFallbacks() {
	c.Server.APIKeys = splitList(c.Server.APIKeys)
	c.Server.CORSOrigins = splitList(c.Server.CORSOrigins)

	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}

	if c.Observability.ServiceInstance == "" {
		if hostname, err := os.Hostname(); err == nil {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-%s", c.Observability.ServiceName, hostname)
		} else {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-1", c.Observability.ServiceName)
		}
	}

	// The common DATABASE_URL convention is honoured when nothing else set one.
	if c.Database.URL == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			c.Database.URL = url
		}
	}
}

// splitList normalizes list values that arrive from the environment as a
// single comma-separated string.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

var watchedEnvVars = []string{
	envPrefix + "_SERVER_PORT",
	envPrefix + "_SERVER_HOST",
	envPrefix + "_SERVER_APIKEYS",
	envPrefix + "_APP_LOGLEVEL",
	envPrefix + "_AUTH_JWTSECRET",
	envPrefix + "_DATABASE_DRIVER",
	envPrefix + "_DATABASE_URL",
	envPrefix + "_GITHUB_TOKEN",
	envPrefix + "_EVENTS_URL",
	envPrefix + "_ARCHIVE_SECRETACCESSKEY",
	envPrefix + "_VAULT_ENABLED",
	"DATABASE_URL",
}

func isSensitiveEnv(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"key", "secret", "token", "url"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func configured(value string) string {
	if value == "" {
		return "***NOT SET***"
	}
	return "***CONFIGURED***"
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range watchedEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if isSensitiveEnv(envVar) {
			log.Printf("[CONFIG]   %s=***MASKED***", envVar)
		} else {
			log.Printf("[CONFIG]   %s=%s", envVar, value)
		}
		hasEnvVars = true
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Server: %s:%s (TLS %s)", c.Server.Host, c.Server.Port, c.Server.TLS.Mode)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Database Driver: %s", c.Database.Driver)
	log.Printf("[CONFIG] JWT Secret: %s", configured(c.Auth.JWTSecret))
	log.Printf("[CONFIG] GitHub Token: %s", configured(c.GitHub.Token))
	log.Printf("[CONFIG] API Keys: %d", len(c.Server.APIKeys))
	log.Printf("[CONFIG] Events Enabled: %t, Archive Enabled: %t", c.Events.Enabled, c.Archive.Enabled)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
	log.Println("[CONFIG] =====================================")
}
