package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ppiankov/censusflat/internal/model"
)

// ReadFile reads a JSON file and strips a leading byte-order mark. UTF-16
// input with a BOM is transcoded to UTF-8.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := decodeUTF8(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func decodeUTF8(r io.Reader) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(r, dec))
}

// ParseDocument decodes a raw census export
func ParseDocument(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and decodes a raw census export
func LoadDocument(path string) (*model.Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// LoadOutput reads an already flattened document
func LoadOutput(path string) (*model.Output, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out model.Output
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &out, nil
}
