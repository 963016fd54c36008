package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"hireup/internal/config"
	"hireup/internal/errors"
	"hireup/internal/observability"
)

const (
	certExpiryCritical = 24 * time.Hour
	certExpiryWarning  = 7 * 24 * time.Hour
)

// CertificateManager holds the active TLS material and swaps it in place
// when the certificate files change.
type CertificateManager struct {
	mu sync.RWMutex

	serverCert *tls.Certificate
	caPool     *x509.CertPool
	notAfter   time.Time

	lastReload      time.Time
	reloadCount     int64
	reloadFailures  int64
	lastReloadError string

	cfg     config.TLSConfig
	watcher *CertWatcher
	metrics *observability.Metrics
	logger  *errors.Logger
}

// NewCertificateManager creates a manager. Nothing is loaded until Start.
func NewCertificateManager(cfg config.TLSConfig, metrics *observability.Metrics, logger *errors.Logger) *CertificateManager {
	return &CertificateManager{cfg: cfg, metrics: metrics, logger: logger}
}

// Start loads the initial certificates and, for file based material with
// auto-reload enabled, begins watching the files.
func (cm *CertificateManager) Start() error {
	if err := cm.Reload(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	if !cm.cfg.AutoReload.Enabled || !cm.usesFiles() {
		return nil
	}

	watcher := NewCertWatcher(cm.watchedFiles(), cm.cfg.AutoReload.DebounceDelay, cm.triggerReload, cm.logger)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	cm.watcher = watcher
	return nil
}

// Stop stops the file watcher, if any.
func (cm *CertificateManager) Stop() error {
	if cm == nil || cm.watcher == nil {
		return nil
	}
	if err := cm.watcher.Stop(); err != nil {
		cm.logger.LogError(err, "Failed to stop certificate watcher")
		return err
	}
	cm.logger.Info("Certificate manager stopped")
	return nil
}

// GetCertificate is used as tls.Config.GetCertificate.
func (cm *CertificateManager) GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}
	if time.Now().After(cm.notAfter) {
		cm.logger.Warn("Serving expired certificate", "expiry", cm.notAfter, "server_name", hello.ServerName)
	}
	return cm.serverCert, nil
}

// CAPool returns the client CA pool, nil unless mode is mutual.
func (cm *CertificateManager) CAPool() *x509.CertPool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.caPool
}

// Reload reads the certificate material again. The previous certificates
// stay active when loading fails.
func (cm *CertificateManager) Reload() error {
	cert, notAfter, err := cm.loadServerCertificate()
	if err == nil {
		var pool *x509.CertPool
		pool, err = cm.loadCAPool()
		if err == nil {
			cm.mu.Lock()
			cm.serverCert = cert
			cm.notAfter = notAfter
			cm.caPool = pool
			cm.lastReload = time.Now()
			cm.reloadCount++
			cm.lastReloadError = ""
			cm.mu.Unlock()

			cm.metrics.RecordCertReload(context.Background(), true)
			cm.logger.Info("Certificates loaded", "expiry", notAfter)
			return nil
		}
	}

	cm.mu.Lock()
	cm.reloadFailures++
	cm.lastReloadError = err.Error()
	cm.mu.Unlock()
	cm.metrics.RecordCertReload(context.Background(), false)
	return err
}

func (cm *CertificateManager) triggerReload() {
	cm.logger.Info("Certificate reload triggered by file watcher")
	if err := cm.Reload(); err != nil {
		cm.logger.LogError(err, "Failed to reload certificates")
	}
}

// Status summarizes the loaded certificate for the health endpoint.
func (cm *CertificateManager) Status(now time.Time) map[string]any {
	if cm == nil {
		return nil
	}
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	remaining := cm.notAfter.Sub(now)
	state := "healthy"
	switch {
	case cm.serverCert == nil || remaining <= 0:
		state = "expired"
	case remaining < certExpiryCritical:
		state = "critical"
	case remaining < certExpiryWarning:
		state = "warning"
	}

	status := map[string]any{
		"status":           state,
		"healthy":          state != "expired",
		"expires_at":       cm.notAfter.UTC().Format(time.RFC3339),
		"expires_in_hours": int(remaining.Hours()),
		"reload_count":     cm.reloadCount,
		"reload_failures":  cm.reloadFailures,
		"auto_reload":      cm.watcher != nil,
	}
	if !cm.lastReload.IsZero() {
		status["last_reload"] = cm.lastReload.UTC().Format(time.RFC3339)
	}
	if cm.lastReloadError != "" {
		status["last_error"] = cm.lastReloadError
	}
	return status
}

func (cm *CertificateManager) usesFiles() bool {
	return cm.cfg.CertContent == "" && cm.cfg.KeyContent == "" &&
		(cm.cfg.CertFile != "" || cm.cfg.KeyFile != "")
}

func (cm *CertificateManager) watchedFiles() []string {
	var files []string
	for _, f := range []string{cm.cfg.CertFile, cm.cfg.KeyFile, cm.cfg.CAFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

func (cm *CertificateManager) loadServerCertificate() (*tls.Certificate, time.Time, error) {
	var (
		cert tls.Certificate
		err  error
	)
	switch {
	case cm.cfg.CertContent != "" && cm.cfg.KeyContent != "":
		cert, err = tls.X509KeyPair([]byte(cm.cfg.CertContent), []byte(cm.cfg.KeyContent))
	case cm.cfg.CertFile != "" && cm.cfg.KeyFile != "":
		cert, err = tls.LoadX509KeyPair(cm.cfg.CertFile, cm.cfg.KeyFile)
	default:
		return nil, time.Time{}, fmt.Errorf("TLS certificate and key are required (provide either files or content)")
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load server cert/key: %w", err)
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse server certificate: %w", err)
	}
	cert.Leaf = leaf
	return &cert, leaf.NotAfter, nil
}

func (cm *CertificateManager) loadCAPool() (*x509.CertPool, error) {
	if cm.cfg.Mode != "mutual" {
		return nil, nil
	}

	var caPEM []byte
	switch {
	case cm.cfg.CAContent != "":
		caPEM = []byte(cm.cfg.CAContent)
	case cm.cfg.CAFile != "":
		data, err := os.ReadFile(cm.cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		caPEM = data
	default:
		return nil, fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	return pool, nil
}
