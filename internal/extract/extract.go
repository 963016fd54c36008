// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"hireup/internal/errors"
	"hireup/internal/utils"
)

// DefaultMinTextLength is the shortest extracted text treated as a readable resume.
const DefaultMinTextLength = 50

// Kind identifies a supported document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

// Document is the result of a successful extraction.
type Document struct {
	FileName string `json:"fileName"`
	Kind     Kind   `json:"kind"`
	Size     int64  `json:"fileSize"`
	Text     string `json:"-"`
}

// Extractor reads PDF and DOCX files. Plain text is accepted only when
// AllowText is set, which the CLI does and the upload endpoint does not.
type Extractor struct {
	MinTextLength int
	AllowText     bool
}

// NewExtractor returns an extractor with the default minimum text length.
func NewExtractor(allowText bool) *Extractor {
	return &Extractor{MinTextLength: DefaultMinTextLength, AllowText: allowText}
}

// KindOf returns the document kind for a file name, or false when the
// extension is not supported.
func (e *Extractor) KindOf(fileName string) (Kind, bool) {
	switch utils.GetFileExtension(fileName) {
	case ".pdf":
		return KindPDF, true
	case ".docx":
		return KindDOCX, true
	}
	if e.AllowText && utils.IsTextFile(fileName) {
		return KindText, true
	}
	return "", false
}

// Extract parses data according to the extension of fileName and checks
// that enough text came out of it.
func (e *Extractor) Extract(fileName string, data []byte) (*Document, error) {
	kind, ok := e.KindOf(fileName)
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeUnsupportedFileType,
			"Only PDF and DOCX files are supported", nil).WithContext("file_name", fileName)
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		text, err = pdfText(data)
		if err != nil {
			return nil, errors.NewExtractionError(errors.ErrCodeDocumentParse, "Failed to parse PDF file", err).
				WithContext("file_name", fileName)
		}
	case KindDOCX:
		text, err = docxText(data)
		if err != nil {
			return nil, errors.NewExtractionError(errors.ErrCodeDocumentParse, "Failed to parse DOCX file", err).
				WithContext("file_name", fileName)
		}
	default:
		text = string(data)
	}

	if len(strings.TrimSpace(text)) < e.MinTextLength {
		return nil, errors.NewExtractionError(errors.ErrCodeTextExtraction,
			"Could not extract text from resume", nil).WithContext("file_name", fileName)
	}

	return &Document{
		FileName: fileName,
		Kind:     kind,
		Size:     int64(len(data)),
		Text:     text,
	}, nil
}

func pdfText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return wordprocessingText(doc.Editable().GetContent())
}

// wordprocessingText flattens document.xml to text, one line per paragraph.
func wordprocessingText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				sb.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}
