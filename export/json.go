package export

import (
	"encoding/json"
	"io"

	"linkroute/diagram"
)

// Route is the JSON form of one link.
type Route struct {
	ID     string       `json:"id"`
	From   string       `json:"from,omitempty"`
	To     string       `json:"to,omitempty"`
	State  string       `json:"state"`
	Points [][2]float64 `json:"points"`
}

// Routes is the JSON document written by JSONExporter.
type Routes struct {
	Links []Route `json:"links"`
}

// Collect gathers the routes of doc in link order.
func Collect(doc *diagram.Document) Routes {
	out := Routes{Links: make([]Route, 0, len(doc.Links()))}
	for _, l := range doc.Links() {
		r := Route{ID: l.ID, State: l.State().String(), Points: [][2]float64{}}
		if p := l.From(); p != nil {
			r.From = p.ID
		}
		if p := l.To(); p != nil {
			r.To = p.ID
		}
		for _, p := range l.Points() {
			r.Points = append(r.Points, [2]float64{p.X, p.Y})
		}
		out.Links = append(out.Links, r)
	}
	return out
}

// JSON writes the routes of doc to w.
func JSON(w io.Writer, doc *diagram.Document) error {
	if err := checkDocument(doc); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Collect(doc))
}

// JSONExporter exports routes to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the document's routes to JSON
func (e *JSONExporter) Export(doc *diagram.Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	return json.MarshalIndent(Collect(doc), "", "  ")
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
