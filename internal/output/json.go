// Package output writes the aggregated document and optional clean-record exports to disk.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crimeprep/internal/logger"
	"crimeprep/internal/models"
	"crimeprep/pkg/checksum"
)

// ErrNilDocument is returned when there is nothing to write.
var ErrNilDocument = errors.New("document is nil")

// Result describes a written file.
type Result struct {
	Path   string
	SHA256 string
	Bytes  int
}

// Writer serializes documents as indented UTF-8 JSON.
type Writer struct {
	logger *logger.Logger
	indent int
}

// NewWriter creates a writer using indent spaces per level (0 writes compact JSON).
func NewWriter(indent int, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Discard()
	}

	return &Writer{indent: indent, logger: log}
}

// Encode renders doc without escaping HTML characters, so "&" stays literal.
func (w *Writer) Encode(doc models.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if w.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", w.indent))
	}

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteDocument encodes doc and replaces the file at path in one rename.
func (w *Writer) WriteDocument(path string, doc models.Document) (Result, error) {
	data, err := w.Encode(doc)
	if err != nil {
		return Result{}, err
	}

	return w.WriteEncoded(path, data)
}

// WriteEncoded writes bytes produced by Encode to path.
func (w *Writer) WriteEncoded(path string, data []byte) (Result, error) {
	if err := WriteFileAtomic(path, data); err != nil {
		return Result{}, err
	}

	res := Result{Path: path, Bytes: len(data), SHA256: checksum.Bytes(data)}
	w.logger.Debug("document written", "path", path, "bytes", res.Bytes, "sha256", res.SHA256)

	return res, nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	return writeAtomic(path, func(f *os.File) error {
		_, err := f.Write(data)

		return err
	})
}

func writeAtomic(path string, fill func(f *os.File) error) (err error) {
	dir := filepath.Dir(path)
	if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
		return fmt.Errorf("failed to create directory: %w", mkdirErr)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
