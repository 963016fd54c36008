package common

import (
	"slices"
	"testing"

	"hireup/internal/errors"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectedError    string
	}{
		{name: "json", format: "json", supportedFormats: supported},
		{name: "markdown", format: "markdown", supportedFormats: supported},
		{
			name:             "unknown format",
			format:           "xml",
			supportedFormats: supported,
			expectedError:    "unsupported output format 'xml'. Supported formats: [json text markdown]",
		},
		{
			name:             "case sensitive",
			format:           "JSON",
			supportedFormats: supported,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "empty format",
			format:           "",
			supportedFormats: supported,
			expectedError:    "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{name: "no restrictions", format: "xml", supportedFormats: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)
			if tt.expectedError == "" {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			appErr, ok := errors.As(err)
			if !ok {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.Message != tt.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tt.expectedError, appErr.Message)
			}
			if appErr.Code != errors.ErrCodeInvalidFormat {
				t.Errorf("code = %s, want %s", appErr.Code, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	tests := []struct {
		name      string
		supported []string
		want      []string
	}{
		{name: "all registered", supported: nil, want: []string{"json", "markdown", "text"}},
		{name: "configured order", supported: []string{"text", "json"}, want: []string{"text", "json"}},
		{name: "unknown dropped", supported: []string{"json", "xml", "json"}, want: []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSupportedFormats(tt.supported)
			if !slices.Equal(got, tt.want) {
				t.Errorf("GetSupportedFormats(%v) = %v, want %v", tt.supported, got, tt.want)
			}
		})
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
