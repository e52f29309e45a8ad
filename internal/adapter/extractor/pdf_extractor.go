package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"docquiz/internal/domain"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor implements domain.TextExtractor on top of ledongthuc/pdf
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a new PDFExtractor instance
func NewPDFExtractor(logger *zap.Logger) domain.TextExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract converts a PDF byte buffer into plain text. Extraction failures
// are terminal for the request; the caller maps them to a generic 500.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", domain.NewExtractionFailedError(fmt.Errorf("empty buffer"))
	}
	if err := ctx.Err(); err != nil {
		return "", domain.NewExtractionFailedError(err)
	}

	// The pdf package panics on some malformed inputs instead of returning
	// an error; recover so a bad upload cannot take the request down.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("PDF extraction panicked", zap.Any("panic", r))
			text = ""
			err = domain.NewExtractionFailedError(fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("Failed to open PDF", zap.Error(err), zap.Int("size", len(data)))
		return "", domain.NewExtractionFailedError(err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		e.logger.Warn("Failed to extract PDF text", zap.Error(err))
		return "", domain.NewExtractionFailedError(err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", domain.NewExtractionFailedError(err)
	}

	text = strings.TrimSpace(sb.String())
	e.logger.Debug("Extracted PDF text",
		zap.Int("pdf_bytes", len(data)),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}
