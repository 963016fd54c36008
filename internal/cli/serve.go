package cli

import (
	"fmt"

	"hireup/internal/config"
	"hireup/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API for resume analysis, accounts, scan history,
saved jobs and GitHub scoring.

Available endpoints:
- POST /api/auth/register, /api/auth/login: Create a session
- GET /api/auth/me, PUT /api/auth/profile: Read or update the signed-in user
- /api/auth/resume(s), /api/auth/save-job, /api/auth/job/{id}: Scan history and saved jobs
- GET /api/dashboard/stats: Score trends for the signed-in user
- POST /api/resume/analyze: Analyze an uploaded PDF or DOCX resume
- POST /api/resume/analyze-text: Analyze plain resume text
- GET /api/github/{username}: Score a GitHub profile
- GET /api/health, GET /api/stats: Health and server statistics

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

// serveFlagBindings maps serve flags onto configuration keys.
var serveFlagBindings = []config.FlagBinding{
	{Key: "server.port", Flag: "port"},
	{Key: "server.host", Flag: "host"},
	{Key: "server.tls.mode", Flag: "tls-mode"},
	{Key: "server.tls.certFile", Flag: "cert-file"},
	{Key: "server.tls.keyFile", Flag: "key-file"},
	{Key: "server.tls.caFile", Flag: "ca-file"},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if err := config.ApplyFlags(cfg, cmd.Flags(), serveFlagBindings); err != nil {
		return fmt.Errorf("failed to apply flags: %w", err)
	}
	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	srv, err := server.NewFromConfig(cmd.Context(), cfg, Version, logger)
	if err != nil {
		return err
	}
	return srv.Start(cmd.Context())
}
