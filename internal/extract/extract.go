package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidDocument is returned when the upload is not a readable PDF or
// contains no extractable text. It is fatal for the whole analysis request.
var ErrInvalidDocument = errors.New("invalid document")

// PDFText extracts plain text from an in-memory PDF payload.
// Library: github.com/ledongthuc/pdf.
func PDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrInvalidDocument
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", ErrInvalidDocument
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", ErrInvalidDocument
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", ErrInvalidDocument
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrInvalidDocument
	}
	return text, nil
}
