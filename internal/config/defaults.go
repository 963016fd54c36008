package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values. Every key needs a
// default so that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.corsOrigins", []string{})

	// TLS Configuration
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.certContent", "")
	v.SetDefault("server.tls.keyContent", "")
	v.SetDefault("server.tls.caContent", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.clientAuthPolicy", "require")
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.debounceDelay", time.Second)

	// Rate limiting
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 5*1024*1024) // 5MB, matches the upload limit

	// Analysis
	v.SetDefault("analysis.lexiconFile", "")
	v.SetDefault("analysis.minTextLength", 50)

	// Auth
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenTTL", 30*24*time.Hour)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.pepper", "")

	// Database
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.url", "")
	v.SetDefault("database.maxConns", 10)

	// GitHub
	v.SetDefault("github.baseURL", "https://api.github.com")
	v.SetDefault("github.token", "")
	v.SetDefault("github.timeout", 10*time.Second)
	v.SetDefault("github.circuitBreaker.enabled", true)
	v.SetDefault("github.circuitBreaker.maxRequests", 3)
	v.SetDefault("github.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("github.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("github.circuitBreaker.minRequests", 3)
	v.SetDefault("github.circuitBreaker.failureThreshold", 0.6)

	// Events
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.url", "")
	v.SetDefault("events.exchange", "hireup.scans")

	// Archive
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.accessKeyID", "")
	v.SetDefault("archive.secretAccessKey", "")

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.jwtSecret", "")
	v.SetDefault("vault.secrets.databaseURL", "")
	v.SetDefault("vault.secrets.githubToken", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "hireup")
	v.SetDefault("observability.serviceVersion", "") // app version when empty
	v.SetDefault("observability.serviceInstance", "")
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
