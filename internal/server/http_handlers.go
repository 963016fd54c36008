package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"hireup/internal/errors"
)

const healthCheckTimeout = 2 * time.Second

// healthHandler reports service and database status. A failed database ping
// marks the service degraded.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"service":   "hireup",
		"version":   s.Version,
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	if s.deps.Store == nil || s.deps.Store.Ping(ctx) != nil {
		response["database"] = "disconnected"
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}

	if certStatus := s.checkCertificateHealth(); certStatus != nil {
		response["certificates"] = certStatus
		if healthy, _ := certStatus["healthy"].(bool); !healthy {
			response["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, response)
}

// checkCertificateHealth reports certificate expiry, or nil without TLS.
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}
	return s.CertificateManager.Status(time.Now())
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "hireup",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"api_keys_configured":    len(s.APIKeys),
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	breakers := map[string]any{}
	if s.deps.GitHub != nil {
		breakers["github"] = s.deps.GitHub.Breaker().Stats()
	}
	response["circuit_breakers"] = breakers

	writeJSON(w, http.StatusOK, response)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// decodeRequest parses and validates a JSON body.
func (s *Server) decodeRequest(r *http.Request, v any) error {
	if err := parseJSONRequest(r, v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Invalid request body", err)
	}

	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, fieldMessage(fe), err).
			WithContext("field", fe.Field())
	}
	return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Invalid request", err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "min", "max":
		return fe.Field() + " is out of range"
	default:
		return "Invalid " + fe.Field()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: error, Message: message})
}

// writeError maps err to a status code and writes it. Messages of
// unclassified errors are not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusForError(err)
	message := "Internal server error"
	detail := ""
	if appErr, ok := errors.As(err); ok {
		message = appErr.Message
		if appErr.Type == errors.ErrorTypeValidation && appErr.Cause != nil && message == "Invalid request body" {
			detail = appErr.Cause.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed", "endpoint", r.URL.Path, "method", r.Method)
	} else {
		s.Logger.Debug("Request rejected", "endpoint", r.URL.Path, "status", status, "error", message)
	}
	writeErrorResponse(w, message, detail, status)
}
