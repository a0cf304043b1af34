// Package export writes routed documents to JSON, text and PNG.
package export

import (
	"errors"
	"fmt"
	"strings"

	"linkroute/diagram"
)

// ErrUnsupportedFormat is returned for format names no exporter handles.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents an export format
type Format string

const (
	// FormatJSON writes every link's routed points
	FormatJSON Format = "json"
	// FormatASCII draws nodes and routes as Unicode box art
	FormatASCII Format = "ascii"
	// FormatPNG rasterizes nodes and routes
	FormatPNG Format = "png"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export renders a routed document in the target format
	Export(doc *diagram.Document) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatPNG:
		return NewPNGExporter(DefaultPNGOptions()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatASCII,
		FormatPNG,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:  "Routed link points as JSON",
		FormatASCII: "ASCII/Unicode art",
		FormatPNG:   "PNG image",
	}
}

func checkDocument(doc *diagram.Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	return nil
}
