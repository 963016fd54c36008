// Package formatters renders command results as JSON, text or markdown.
package formatters

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"hireup/internal/github"
	"hireup/internal/store"
	"hireup/internal/types"
)

// Formatter renders one payload type. SupportedType names that type as
// returned by payloadType, or "any".
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry maps an output format and payload type to a Formatter.
type FormatterRegistry struct {
	byFormat map[string]map[string]Formatter
}

// NewFormatterRegistry returns a registry with JSON for every payload and
// text/markdown renderers for analysis, GitHub and dashboard results.
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{byFormat: make(map[string]map[string]Formatter)}

	registry.Register("json", &JSONFormatter{})
	for _, f := range []Formatter{&AnalysisTextFormatter{}, &ProfileTextFormatter{}, &DashboardTextFormatter{}} {
		registry.Register("text", f)
	}
	for _, f := range []Formatter{&AnalysisMarkdownFormatter{}, &ProfileMarkdownFormatter{}, &DashboardMarkdownFormatter{}} {
		registry.Register("markdown", f)
	}
	return registry
}

// Register adds formatter under format for the type it reports.
func (fr *FormatterRegistry) Register(format string, formatter Formatter) {
	if fr.byFormat[format] == nil {
		fr.byFormat[format] = make(map[string]Formatter)
	}
	fr.byFormat[format][formatter.SupportedType()] = formatter
}

// Format renders data, falling back to the format's "any" formatter.
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := payloadType(data)
	byType := fr.byFormat[format]

	formatter, ok := byType[dataType]
	if !ok {
		formatter, ok = byType["any"]
	}
	if !ok {
		return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
	}
	return formatter.Format(data)
}

// GetSupportedFormats returns the registered format names, sorted.
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	return slices.Sorted(maps.Keys(fr.byFormat))
}

func payloadType(data any) string {
	switch data.(type) {
	case types.AnalysisData, *types.AnalysisData:
		return "AnalysisData"
	case github.ProfileScore, *github.ProfileScore:
		return "ProfileScore"
	case store.DashboardStats, *store.DashboardStats:
		return "DashboardStats"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (JSONFormatter) Format(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(out) + "\n", nil
}

func (JSONFormatter) SupportedType() string { return "any" }

// GlobalRegistry is the default registry used by the CLI
var GlobalRegistry = NewFormatterRegistry()
