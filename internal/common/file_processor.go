package common

import (
	"fmt"
	"io"
	"os"

	"hireup/internal/errors"
	"hireup/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ReadBytes validates and reads a file, refusing files larger than maxSize
// when maxSize is positive.
func (fp *FileProcessor) ReadBytes(filename string, maxSize int64) ([]byte, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	var r io.Reader = file
	if maxSize > 0 {
		r = io.LimitReader(file, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, errors.NewValidationError("FILE_TOO_LARGE",
			fmt.Sprintf("File %s exceeds the %s limit", filename, utils.FormatFileSize(maxSize)), nil)
	}

	fp.logger.Debug("File read", "filename", filename, "size", utils.FormatFileSize(int64(len(content))))
	return content, nil
}

// ReadFile reads a text file.
func (fp *FileProcessor) ReadFile(filename string) (string, error) {
	content, err := fp.ReadBytes(filename, 0)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// WriteFile writes content, creating the parent directory first.
func (fp *FileProcessor) WriteFile(filename, content string) error {
	if err := fp.ValidateOutputFile(filename); err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}
	fp.logger.Debug("File written", "filename", filename, "size", utils.FormatFileSize(int64(len(content))))
	return nil
}

// ValidateOutputFile makes sure an output path can be created. An empty
// name means stdout.
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewIOError("DIRECTORY_CREATE_FAILED",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}
	return nil
}
