// Package importer builds diagram documents from scene files.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"linkroute/diagram"
)

// ErrUnknownFormat is returned when no importer accepts the content.
var ErrUnknownFormat = errors.New("unknown scene format")

// Importer converts scene content into a routed document.
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import builds the document. Options are applied after the ones the
	// scene itself carries.
	Import(content string, opts ...diagram.Option) (*diagram.Document, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a registry holding the scene importer.
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{NewSceneImporter()},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat returns the first importer that accepts content.
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Import imports content using auto-detection.
func (r *ImporterRegistry) Import(content string, opts ...diagram.Option) (*diagram.Document, error) {
	imp, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return imp.Import(content, opts...)
}

// ImportFile reads path and imports it with the importer registered for
// its extension, falling back to detection.
func (r *ImporterRegistry) ImportFile(path string, opts ...diagram.Option) (*diagram.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				doc, err := imp.Import(string(data), opts...)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				return doc, nil
			}
		}
	}
	doc, err := r.Import(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
