package common

import (
	"fmt"
	"slices"

	"hireup/internal/errors"
	"hireup/internal/formatters"
)

// ValidateOutputFormat checks format against the configured supported
// formats. An empty list allows every format.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 || slices.Contains(supportedFormats, format) {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format '%s'. Supported formats: %v", format, supportedFormats), nil)
}

// GetSupportedFormats returns the configured formats the formatter registry
// can render. Without configuration every registered format is returned.
func GetSupportedFormats(supportedFormats []string) []string {
	registered := formatters.GlobalRegistry.GetSupportedFormats()
	if len(supportedFormats) == 0 {
		return registered
	}
	formats := make([]string, 0, len(supportedFormats))
	for _, format := range supportedFormats {
		if slices.Contains(registered, format) && !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}
	return formats
}
