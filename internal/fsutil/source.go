package fsutil

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource reads a layout file as UTF-8. A leading byte order mark is
// honoured (UTF-16 sources are transcoded) and stripped.
func ReadSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeSource(f)
}

// DecodeSource is ReadSource for an already opened reader.
func DecodeSource(r io.Reader) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	src, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source: %w", err)
	}
	return src, nil
}
