// Package docparse extracts plain text from uploaded resume documents.
package docparse

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF from r and returns its plain text. The
// upload is staged in a temporary file that is removed on every exit
// path, including parse failure.
func ExtractText(r io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "resume-upload-*.pdf")
	if err != nil {
		return "", &ExtractError{Message: "failed to create temporary file", Cause: err}
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return "", &ExtractError{Message: "failed to stage upload", Cause: err}
	}
	if size == 0 {
		return "", &ExtractError{Message: "uploaded document is empty"}
	}

	reader, err := pdf.NewReader(tmp, size)
	if err != nil {
		return "", &ExtractError{Message: "failed to open PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractError{Message: "failed to extract text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &ExtractError{Message: "failed to read extracted text", Cause: err}
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", &ExtractError{Message: "document contains no extractable text"}
	}

	return text, nil
}
