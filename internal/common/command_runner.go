package common

import (
	"context"
	"io"
	"time"

	"hireup/internal/errors"
)

// OperationFunc produces a command's result.
type OperationFunc[Output any] func(context.Context) (Output, error)

// RunCommand validates the output settings, runs op and writes its result
// in the requested format. supportedFormats comes from configuration.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	supportedFormats []string,
	w io.Writer,
	name string,
	op OperationFunc[Output],
) error {
	if err := ValidateOutputFormat(cmdConfig.OutputFormat, supportedFormats); err != nil {
		return err
	}
	outputHandler := NewOutputHandler(w, logger)

	start := time.Now()
	result, err := op(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Command completed", "command", name, "duration", time.Since(start).String())

	return outputHandler.HandleOutput(result, cmdConfig)
}
