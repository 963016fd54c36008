package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

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

// multipartOverhead is added to the file size limit for form boundaries and
// the job description field.
const multipartOverhead = 1 << 20

// NewFromConfig wires the store, account services, analysis engine and
// integrations described by cfg into a Server. Resources opened before a
// failure are released.
func NewFromConfig(ctx context.Context, cfg *config.Config, version string, logger *errors.Logger) (_ *Server, err error) {
	om, err := observability.NewObservabilityManager(cfg.Observability, version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			_ = om.Shutdown(context.Background())
		}
	}()

	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, err
	}
	closers = append(closers, st.Close)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.Pepper)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, err.Error(), err)
	}
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"auth.jwtSecret is required to start the server", err)
	}

	lexicon := analysis.DefaultLexicon()
	if cfg.Analysis.LexiconFile != "" {
		lexicon, err = analysis.LoadLexiconFile(cfg.Analysis.LexiconFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded analysis lexicon", "file", cfg.Analysis.LexiconFile)
	}

	extractor := extract.NewExtractor(false)
	if cfg.Analysis.MinTextLength > 0 {
		extractor.MinTextLength = cfg.Analysis.MinTextLength
	}

	publisher, err := events.New(cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	closers = append(closers, func() { _ = publisher.Close() })

	archiver, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resume archive: %w", err)
	}

	deps := Dependencies{
		Store:         st,
		Accounts:      auth.NewAccounts(st, hasher, tokens),
		Analyzer:      analysis.NewAnalyzer(lexicon),
		Extractor:     extractor,
		GitHub:        github.NewClient(cfg.GitHub, logger),
		Events:        publisher,
		Archive:       archiver,
		Observability: om,
	}

	serverCfg := ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Version:         version,
		TLSConfig:       cfg.Server.TLS,
		APIKeys:         cfg.Server.APIKeys,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxRequestSize:  cfg.App.MaxFileSize + multipartOverhead,
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       &cfg.Server.RateLimit,
	}
	return NewServer(cfg, serverCfg, deps, logger), nil
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully and releases the server's dependencies.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tlsConfig, err := s.setupTLS()
	if err != nil {
		s.close()
		return err
	}

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(s.Host, s.Port),
		Handler:      s.Handler(),
		TLSConfig:    tlsConfig,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}

	s.displayServerInfo(httpServer.Addr)

	serverErrors := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", httpServer.Addr,
			"tls_enabled", tlsConfig != nil)

		var err error
		if tlsConfig != nil {
			// certificates come from TLSConfig.GetCertificate
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		s.close()
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Received shutdown signal, starting graceful shutdown")
		return s.performGracefulShutdown(httpServer)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	s.Logger.Info("Shutting down HTTP server...")
	var err error
	if err = server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		err = server.Close()
	}

	s.close()
	if err == nil {
		s.Logger.Info("Server shutdown completed successfully")
	}
	return err
}

// close releases everything the server owns after the listener stops.
func (s *Server) close() {
	if err := s.CertificateManager.Stop(); err != nil {
		s.Logger.LogError(err, "Failed to stop certificate manager")
	}
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
	if err := s.deps.Events.Close(); err != nil {
		s.Logger.LogError(err, "Failed to close event publisher")
	}
	if s.deps.Store != nil {
		s.deps.Store.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.deps.Observability.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}
