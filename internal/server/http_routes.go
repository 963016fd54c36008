package server

import (
	"net/http"
	"slices"

	"hireup/internal/auth"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

// Handler returns the API handler with CORS and tracing applied.
func (s *Server) Handler() http.Handler {
	return s.deps.Observability.HTTPMiddleware()(s.corsMiddleware(s.setupRoutes()))
}

// setupRoutes configures all HTTP routes and middleware. Every API route
// runs rate limit, then authentication, then the body size limit.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	public := func(h http.HandlerFunc) http.HandlerFunc { return s.chain(h, passThrough) }
	private := func(h http.HandlerFunc) http.HandlerFunc { return s.chain(h, s.jwtMiddleware) }

	mux.HandleFunc("GET /api/health", s.healthHandler)
	mux.HandleFunc("GET /api/stats", s.statsHandler)

	mux.HandleFunc("POST /api/auth/register", public(s.registerHandler))
	mux.HandleFunc("POST /api/auth/login", public(s.loginHandler))
	mux.HandleFunc("GET /api/auth/me", private(s.meHandler))
	mux.HandleFunc("PUT /api/auth/profile", private(s.updateProfileHandler))
	mux.HandleFunc("POST /api/auth/resume", private(s.addScanHandler))
	mux.HandleFunc("GET /api/auth/resumes", private(s.listScansHandler))
	mux.HandleFunc("DELETE /api/auth/resume/{id}", private(s.deleteScanHandler))
	mux.HandleFunc("POST /api/auth/save-job", private(s.saveJobHandler))
	mux.HandleFunc("PUT /api/auth/job/{id}", private(s.updateJobHandler))
	mux.HandleFunc("POST /api/auth/github", private(s.connectGitHubHandler))

	mux.HandleFunc("GET /api/dashboard/stats", private(s.dashboardHandler))

	mux.HandleFunc("POST /api/resume/analyze", private(s.analyzeUploadHandler))
	mux.HandleFunc("POST /api/resume/analyze-text", s.chain(s.analyzeTextHandler, s.apiKeyOrJWTMiddleware))

	mux.HandleFunc("GET /api/github/{username}", public(s.githubProfileHandler))

	return mux
}

func (s *Server) chain(h http.HandlerFunc, authn middleware) http.HandlerFunc {
	return s.rateLimitMiddleware()(authn(s.requestSizeLimitMiddleware()(h)))
}

func passThrough(next http.HandlerFunc) http.HandlerFunc { return next }

// jwtMiddleware requires a valid session token.
func (s *Server) jwtMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return s.deps.Accounts.Tokens().Middleware(next).ServeHTTP
}

// apiKeyOrJWTMiddleware accepts a session token or a configured API key.
// Without configured API keys anonymous callers are let through.
func (s *Server) apiKeyOrJWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := s.deps.Accounts.Tokens().Authenticate(r); ok {
			next(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
			return
		}

		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey, _ = auth.BearerToken(r)
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, auth.NotAuthorized, "Invalid API key", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"api_key_prefix", maskAPIKey(apiKey))
		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// corsMiddleware answers preflight requests and sets CORS headers for the
// configured origins. "*" allows any origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	if len(s.CORSOrigins) == 0 {
		return next
	}
	allowAll := slices.Contains(s.CORSOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(s.CORSOrigins, origin)) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
