package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// FileFormat identifies a corpus file type.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // UTF-8 text, one document per line
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo describes what a corpus file of a format must look like.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "text",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
}

// sniffSize is how much of a file is inspected before loading it.
const sniffSize = 4096

// ValidateFileFormat checks filename's size and extension against format and
// sniffs its head for binary content.
func ValidateFileFormat(filename string, format FileFormat) error {
	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %d", format)
	}
	stat, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("%s file %s is empty", info.Description, filename)
	}
	if ext := strings.ToLower(filepath.Ext(filename)); !slices.Contains(info.Extensions, ext) {
		return fmt.Errorf("file %s has extension %q, expected one of %v", filename, ext, info.Extensions)
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()
	head, err := io.ReadAll(io.LimitReader(f, sniffSize))
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if !looksLikeText(head) {
		return fmt.Errorf("file %s is not UTF-8 text", filename)
	}
	log.Debugf("Validated %s file %s", info.Description, filename)
	return nil
}

// looksLikeText reports whether head is NUL-free UTF-8, allowing a rune cut
// off at the end of the sample.
func looksLikeText(head []byte) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	for cut := 0; cut < utf8.UTFMax && cut <= len(head); cut++ {
		if utf8.Valid(head[:len(head)-cut]) {
			return true
		}
	}
	return false
}

// DetectFileFormat returns the first format filename validates as.
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatText} {
		if ValidateFileFormat(filename, format) == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns the description of format.
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, ok := supportedFormats[format]
	return info, ok
}
