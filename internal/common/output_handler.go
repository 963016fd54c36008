package common

import (
	"fmt"
	"io"
	"os"

	"hireup/internal/errors"
	"hireup/internal/formatters"
)

// CommandConfig holds the output flags shared by every command.
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// OutputHandler renders a result and sends it to a file or a writer.
type OutputHandler struct {
	files    *FileProcessor
	registry *formatters.FormatterRegistry
	stdout   io.Writer
	logger   *errors.Logger
}

// NewOutputHandler prints to w when no output file is configured. A nil w
// selects os.Stdout.
func NewOutputHandler(w io.Writer, logger *errors.Logger) *OutputHandler {
	if w == nil {
		w = os.Stdout
	}
	return &OutputHandler{
		files:    NewFileProcessor(logger),
		registry: formatters.GlobalRegistry,
		stdout:   w,
		logger:   logger,
	}
}

// HandleOutput checks the destination before formatting so a bad path
// fails without rendering.
func (oh *OutputHandler) HandleOutput(data any, cfg CommandConfig) error {
	if err := oh.files.ValidateOutputFile(cfg.OutputFile); err != nil {
		return err
	}

	rendered, err := oh.registry.Format(data, cfg.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to format output as %s", cfg.OutputFormat), err)
	}

	if cfg.OutputFile == "" {
		if _, err := io.WriteString(oh.stdout, rendered); err != nil {
			return errors.NewIOError("OUTPUT_WRITE_FAILED", "Failed to write output", err)
		}
		return nil
	}

	if err := oh.files.WriteFile(cfg.OutputFile, rendered); err != nil {
		return err
	}
	oh.logger.Info("Output written successfully", "file", cfg.OutputFile, "format", cfg.OutputFormat)
	return nil
}
