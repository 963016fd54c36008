package server

import (
	"crypto/tls"
	"fmt"
)

// setupTLS starts the certificate manager and builds the listener's TLS
// configuration. It returns nil when TLS is disabled.
func (s *Server) setupTLS() (*tls.Config, error) {
	switch s.TLSConfig.Mode {
	case "", "disabled":
		return nil, nil
	case "server", "mutual":
	default:
		return nil, fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", s.TLSConfig.Mode)
	}

	if s.CertificateManager == nil {
		s.CertificateManager = NewCertificateManager(s.TLSConfig, s.metrics(), s.Logger)
	}
	if err := s.CertificateManager.Start(); err != nil {
		return nil, fmt.Errorf("failed to start certificate manager: %w", err)
	}
	return buildTLSConfig(s.TLSConfig.Mode, s.TLSConfig.MinVersion, s.TLSConfig.ClientAuthPolicy, s.CertificateManager), nil
}

// buildTLSConfig serves certificates from cm so reloads apply to new
// handshakes without a restart. In mutual mode the client CA pool is also
// read per handshake.
func buildTLSConfig(mode, minVersion, clientAuthPolicy string, cm *CertificateManager) *tls.Config {
	cfg := &tls.Config{
		MinVersion:     tlsVersion(minVersion),
		GetCertificate: cm.GetCertificate,
		ClientAuth:     tls.NoClientCert,
	}
	if mode != "mutual" {
		return cfg
	}

	clientAuth := clientAuthType(clientAuthPolicy)
	cfg.ClientAuth = clientAuth
	cfg.GetConfigForClient = func(*tls.ClientHelloInfo) (*tls.Config, error) {
		return &tls.Config{
			MinVersion:     cfg.MinVersion,
			GetCertificate: cm.GetCertificate,
			ClientAuth:     clientAuth,
			ClientCAs:      cm.CAPool(),
		}, nil
	}
	return cfg
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func clientAuthType(policy string) tls.ClientAuthType {
	switch policy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}
