package importer

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"linkroute/config"
	"linkroute/connections"
	"linkroute/diagram"
	"linkroute/geometry"
)

// ErrInvalidScene is returned for scenes that parse but do not describe a
// valid document.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the YAML scene format.
type Scene struct {
	Options config.Options `yaml:"options"`
	Nodes   []NodeSpec     `yaml:"nodes"`
	Ports   []PortSpec     `yaml:"ports"`
	Links   []LinkSpec     `yaml:"links"`
}

// NodeSpec places a rectangular node.
type NodeSpec struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectSpec is a rectangle in document coordinates.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PortSpec declares a port. Unset capabilities default to true.
type PortSpec struct {
	ID                  string    `yaml:"id"`
	Node                string    `yaml:"node"`
	FromSpot            string    `yaml:"from_spot"`
	ToSpot              string    `yaml:"to_spot"`
	EndSegmentLength    *float64  `yaml:"end_segment_length"`
	Delegate            *RectSpec `yaml:"delegate"`
	CanOriginate        *bool     `yaml:"can_originate"`
	CanTerminate        *bool     `yaml:"can_terminate"`
	AllowSelfNode       bool      `yaml:"allow_self_node"`
	AllowDuplicateLinks bool      `yaml:"allow_duplicate_links"`
	SingleLinkOnly      bool      `yaml:"single_link_only"`
}

// LinkSpec declares a link between two port IDs. Points seed an existing
// route for the adjusting styles to work from.
type LinkSpec struct {
	ID              string       `yaml:"id"`
	From            string       `yaml:"from"`
	To              string       `yaml:"to"`
	Validate        bool         `yaml:"validate"`
	Orthogonal      bool         `yaml:"orthogonal"`
	AvoidsObstacles bool         `yaml:"avoids_obstacles"`
	Adjusting       string       `yaml:"adjusting"`
	Curve           string       `yaml:"curve"`
	Curviness       float64      `yaml:"curviness"`
	PenWidth        *float64     `yaml:"pen_width"`
	Points          [][2]float64 `yaml:"points"`
}

// SceneImporter reads YAML scenes.
type SceneImporter struct{}

// NewSceneImporter creates a new scene importer.
func NewSceneImporter() *SceneImporter {
	return &SceneImporter{}
}

// CanImport reports whether content looks like a scene: a YAML mapping
// with a nodes key.
func (s *SceneImporter) CanImport(content string) bool {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(content), &probe); err != nil {
		return false
	}
	_, ok := probe["nodes"]
	return ok
}

// GetFormatName returns the format name
func (s *SceneImporter) GetFormatName() string {
	return "Scene"
}

// GetFileExtensions returns common file extensions
func (s *SceneImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Parse decodes a scene, filling unset options with defaults.
func Parse(content string) (*Scene, error) {
	scene := &Scene{Options: config.Default()}
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(scene); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := scene.Options.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Import builds and routes the document described by content.
func (s *SceneImporter) Import(content string, opts ...diagram.Option) (*diagram.Document, error) {
	scene, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return scene.Build(opts...)
}

// Build creates the document. Every link is routed once, after the whole
// scene is in place.
func (sc *Scene) Build(opts ...diagram.Option) (*diagram.Document, error) {
	doc, err := diagram.NewDocument(append([]diagram.Option{diagram.WithOptions(sc.Options)}, opts...)...)
	if err != nil {
		return nil, err
	}
	doc.SuspendRouting()
	defer doc.ResumeRouting()

	for _, n := range sc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrInvalidScene)
		}
		if n.Width <= 0 || n.Height <= 0 {
			return nil, fmt.Errorf("%w: node %q has size %gx%g", ErrInvalidScene, n.ID, n.Width, n.Height)
		}
		if _, err := doc.AddNode(n.ID, diagram.NewBox(n.X, n.Y, n.Width, n.Height)); err != nil {
			return nil, err
		}
	}

	for _, ps := range sc.Ports {
		if err := addPort(doc, ps); err != nil {
			return nil, err
		}
	}
	for _, n := range doc.Nodes() {
		if len(n.Ports()) > 0 {
			continue
		}
		if _, err := doc.AddPort(n.ID, n.ID); err != nil {
			return nil, fmt.Errorf("implicit port for node %q: %w", n.ID, err)
		}
	}

	for _, ls := range sc.Links {
		if err := addLink(doc, ls); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func addPort(doc *diagram.Document, ps PortSpec) error {
	if ps.ID == "" {
		return fmt.Errorf("%w: port without id on node %q", ErrInvalidScene, ps.Node)
	}
	from, err := parseSpot(ps.FromSpot)
	if err != nil {
		return fmt.Errorf("%w: port %q: %w", ErrInvalidScene, ps.ID, err)
	}
	to, err := parseSpot(ps.ToSpot)
	if err != nil {
		return fmt.Errorf("%w: port %q: %w", ErrInvalidScene, ps.ID, err)
	}
	p, err := doc.AddPort(ps.Node, ps.ID)
	if err != nil {
		return err
	}
	p.FromSpot, p.ToSpot = from, to
	if ps.EndSegmentLength != nil {
		if *ps.EndSegmentLength < 0 {
			return fmt.Errorf("%w: port %q has negative end segment length", ErrInvalidScene, ps.ID)
		}
		p.SegmentLength = *ps.EndSegmentLength
	}
	if ps.Delegate != nil {
		p.Delegate = diagram.NewBox(ps.Delegate.X, ps.Delegate.Y, ps.Delegate.Width, ps.Delegate.Height)
	}
	if ps.CanOriginate != nil {
		p.CanOriginate = *ps.CanOriginate
	}
	if ps.CanTerminate != nil {
		p.CanTerminate = *ps.CanTerminate
	}
	p.AllowSelfNode = ps.AllowSelfNode
	p.AllowDuplicateLinks = ps.AllowDuplicateLinks
	p.SingleLinkOnly = ps.SingleLinkOnly
	return nil
}

func parseSpot(name string) (geometry.Spot, error) {
	if name == "" {
		return geometry.SpotNone, nil
	}
	return geometry.ParseSpot(name)
}

func addLink(doc *diagram.Document, ls LinkSpec) error {
	if ls.ID == "" {
		return fmt.Errorf("%w: link without id from %q", ErrInvalidScene, ls.From)
	}
	adjusting, err := connections.ParseAdjusting(ls.Adjusting)
	if err != nil {
		return fmt.Errorf("%w: link %q: %w", ErrInvalidScene, ls.ID, err)
	}
	curve, err := connections.ParseCurve(ls.Curve)
	if err != nil {
		return fmt.Errorf("%w: link %q: %w", ErrInvalidScene, ls.ID, err)
	}

	var l *diagram.Link
	if ls.Validate {
		l, err = doc.Connect(ls.ID, ls.From, ls.To)
	} else {
		l, err = doc.AddLink(ls.ID, ls.From, ls.To)
	}
	if err != nil {
		return err
	}
	if len(ls.Points) > 0 {
		pts := make([]geometry.Point, len(ls.Points))
		for i, p := range ls.Points {
			pts[i] = geometry.Pt(p[0], p[1])
		}
		l.SetPoints(pts)
	}
	l.SetOrthogonal(ls.Orthogonal)
	l.SetAvoidsObstacles(ls.AvoidsObstacles)
	l.SetAdjusting(adjusting)
	l.SetCurve(curve)
	l.SetCurviness(ls.Curviness)
	if ls.PenWidth != nil {
		l.SetPenWidth(*ls.PenWidth)
	}
	return nil
}
