package server

import (
	"fmt"

	"hireup/internal/utils"
)

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo(addr string) {
	s.displayListener(addr)
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

func (s *Server) displayListener(addr string) {
	switch s.TLSConfig.Mode {
	case "server":
		fmt.Printf("Starting server with HTTPS on https://%s\n", addr)
		fmt.Println("TLS mode: Server-only (no client certificates required)")
	case "mutual":
		fmt.Printf("Starting server with mTLS on https://%s\n", addr)
		fmt.Printf("TLS mode: Mutual (client auth policy: %s)\n", s.TLSConfig.ClientAuthPolicy)
	default:
		fmt.Printf("Starting server on http://%s\n", addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
	}
	if s.CertificateManager != nil && s.CertificateManager.watcher != nil {
		fmt.Println("TLS auto-reload: ENABLED (watching certificate files)")
	}
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /api/health               - Health check")
	fmt.Println("  GET    /api/stats                - Server statistics")
	fmt.Println("  POST   /api/auth/register        - Create an account")
	fmt.Println("  POST   /api/auth/login           - Sign in")
	fmt.Println("  GET    /api/auth/me              - Current user (requires token)")
	fmt.Println("  PUT    /api/auth/profile         - Update profile (requires token)")
	fmt.Println("  POST   /api/auth/resume          - Add scan to history (requires token)")
	fmt.Println("  GET    /api/auth/resumes         - Scan history (requires token)")
	fmt.Println("  DELETE /api/auth/resume/{id}     - Delete scan (requires token)")
	fmt.Println("  POST   /api/auth/save-job        - Save job (requires token)")
	fmt.Println("  PUT    /api/auth/job/{id}        - Update job status (requires token)")
	fmt.Println("  POST   /api/auth/github          - Link GitHub account (requires token)")
	fmt.Println("  GET    /api/dashboard/stats      - Dashboard (requires token)")
	fmt.Println("  POST   /api/resume/analyze       - Analyze PDF/DOCX upload (requires token)")
	fmt.Println("  POST   /api/resume/analyze-text  - Analyze plain text (token or API key)")
	fmt.Println("  GET    /api/github/{username}    - GitHub profile score")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API key authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /api/resume/analyze-text")
	} else {
		fmt.Println("API key authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: /api/resume/analyze-text accepts anonymous requests!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %s (uploads: %s)\n",
			utils.FormatFileSize(s.MaxRequestSize), utils.FormatFileSize(s.maxFileSize()))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
