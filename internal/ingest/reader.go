// Package ingest reads the raw sales file and parses it into transactions.
package ingest

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/quillium/salescope/internal/common"
)

// fallbackEncodings are tried in order when the file is not valid UTF-8.
var fallbackEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// ReadSalesData reads the sales file, discards the header line, and returns
// the remaining non-blank lines with surrounding whitespace trimmed.
//
// The file content is decoded by attempting UTF-8 first, then Latin-1, then
// Windows-1252; the first encoding that decodes cleanly wins. A missing file
// or encoding exhaustion returns an empty slice together with the error so
// the caller can degrade instead of aborting.
func ReadSalesData(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputFileMissing, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content, err := decode(raw)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		// First line is the column header.
		lines = lines[1:]
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return cleaned, nil
}

func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range fallbackEncodings {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return "", common.ErrEncodingExhausted
}
