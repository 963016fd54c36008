package server

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hireup/internal/analysis"
	"hireup/internal/archive"
	"hireup/internal/auth"
	"hireup/internal/config"
	"hireup/internal/errors"
	"hireup/internal/events"
	"hireup/internal/extract"
	"hireup/internal/github"
	"hireup/internal/observability"
	"hireup/internal/store"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Dependencies are the services the handlers call. Events and Archive
// default to no-ops when nil.
type Dependencies struct {
	Store         store.Store
	Accounts      *auth.Accounts
	Analyzer      *analysis.Analyzer
	Extractor     *extract.Extractor
	GitHub        *github.Client
	Events        events.Publisher
	Archive       archive.Archiver
	Observability *observability.ObservabilityManager
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	TLSConfig          config.TLSConfig
	CertificateManager *CertificateManager

	// API keys accepted by the text analysis endpoint
	APIKeys map[string]bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxRequestSize int64
	CORSOrigins    []string

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	Logger *errors.Logger

	deps          Dependencies
	textExtractor *extract.Extractor
	validate      *validator.Validate
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host            string
	Port            string
	Version         string
	TLSConfig       config.TLSConfig
	APIKeys         []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxRequestSize  int64
	CORSOrigins     []string
	RateLimit       *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, deps Dependencies, logger *errors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstCapacity, logger)
	}

	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}
	if deps.Archive == nil {
		deps.Archive = archive.NopArchiver{}
	}
	if deps.Analyzer == nil {
		deps.Analyzer = analysis.NewAnalyzer(nil)
	}
	if deps.Extractor == nil {
		deps.Extractor = extract.NewExtractor(false)
	}
	textExtractor := &extract.Extractor{MinTextLength: deps.Extractor.MinTextLength, AllowText: true}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	return &Server{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Version:         cfg.Version,
		AppConfig:       appCfg,
		TLSConfig:       cfg.TLSConfig,
		APIKeys:         apiKeyMap,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: shutdownTimeout,
		MaxRequestSize:  cfg.MaxRequestSize,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimit:       cfg.RateLimit,
		RateLimiter:     rateLimiter,
		Logger:          logger,
		deps:            deps,
		textExtractor:   textExtractor,
		validate:        newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) metrics() *observability.Metrics {
	return s.deps.Observability.Metrics()
}
