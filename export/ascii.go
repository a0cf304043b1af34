package export

import (
	"linkroute/canvas"
	"linkroute/diagram"
)

// ASCIIExporter exports documents to ASCII/Unicode art format
type ASCIIExporter struct {
	Options canvas.RenderOptions
	Color   bool // emit ANSI colors for links
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{
		Options: canvas.DefaultRenderOptions(),
	}
}

// ASCII renders doc at scale cells per document unit.
func ASCII(doc *diagram.Document, scale float64) (string, error) {
	e := NewASCIIExporter()
	e.Options.ScaleX, e.Options.ScaleY = scale, scale
	out, err := e.Export(doc)
	return string(out), err
}

// Export draws the document's nodes and routes
func (e *ASCIIExporter) Export(doc *diagram.Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	c, _ := canvas.Render(doc, e.Options)
	if e.Color {
		return []byte(c.ColoredString() + "\n"), nil
	}
	return []byte(c.String() + "\n"), nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}
