package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"linkroute/canvas"
	"linkroute/diagram"
	"linkroute/geometry"
)

// ErrImageTooLarge is returned when the rendered image would exceed
// maxPixels.
var ErrImageTooLarge = errors.New("image too large")

const maxPixels = 64 << 20

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Scale       float64 // pixels per document unit
	Padding     int     // pixels around the drawing
	Supersample int     // render at this multiple and downsample
	LineWidth   float64 // link width in pixels, multiplied by each link's pen width
	FontSize    float64 // node label size in points, 0 for no labels
	Arrows      bool
}

// DefaultPNGOptions returns the options NewExporter uses.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Scale:       2,
		Padding:     20,
		Supersample: 4,
		LineWidth:   1.5,
		FontSize:    12,
		Arrows:      true,
	}
}

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorNodeFill   = color.RGBA{245, 245, 245, 255}
	colorNodeBorder = color.RGBA{51, 51, 51, 255}
	colorLabel      = color.RGBA{51, 51, 51, 255}

	linkColors = map[string]color.RGBA{
		"cyan":    {0, 151, 167, 255},
		"yellow":  {249, 168, 37, 255},
		"magenta": {173, 20, 87, 255},
		"green":   {46, 125, 50, 255},
		"blue":    {21, 101, 192, 255},
		"red":     {198, 40, 40, 255},
	}
)

// LinkColor returns the RGBA value of a palette color name.
func LinkColor(name string) color.RGBA {
	if c, ok := linkColors[name]; ok {
		return c
	}
	return colorNodeBorder
}

// PNG writes doc as a PNG image to w.
func PNG(w io.Writer, doc *diagram.Document, opts PNGOptions) error {
	img, err := Rasterize(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Rasterize draws doc into an image. Shapes are drawn at Supersample
// times the final size and scaled down.
func Rasterize(doc *diagram.Document, opts PNGOptions) (*image.RGBA, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %g", opts.Scale)
	}
	ss := max(opts.Supersample, 1)

	bounds, ok := canvas.Extent(doc)
	if !ok {
		bounds = geometry.Rect{}
	}
	w := int(math.Ceil(bounds.Width*opts.Scale)) + 2*opts.Padding + 1
	h := int(math.Ceil(bounds.Height*opts.Scale)) + 2*opts.Padding + 1
	if w*h*ss*ss > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d at %dx", ErrImageTooLarge, w, h, ss)
	}

	r := &raster{
		img:    image.NewRGBA(image.Rect(0, 0, w*ss, h*ss)),
		origin: geometry.Pt(bounds.X, bounds.Y),
		scale:  opts.Scale * float64(ss),
		pad:    float64(opts.Padding * ss),
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	border := float64(ss)
	for _, n := range doc.Nodes() {
		b := n.Bounds()
		corners := []geometry.Point{
			geometry.Pt(b.X, b.Y),
			geometry.Pt(b.Right(), b.Y),
			geometry.Pt(b.Right(), b.Bottom()),
			geometry.Pt(b.X, b.Bottom()),
		}
		r.fill(r.project(corners), colorNodeFill)
		r.stroke(r.project(append(corners, corners[0])), border, colorNodeBorder)
	}

	for i, l := range doc.Links() {
		pts := r.project(l.Points())
		if len(pts) < 2 {
			continue
		}
		c := LinkColor(canvas.PaletteColor(i))
		width := opts.LineWidth * max(l.PenWidth(), 0.5) * float64(ss)
		r.stroke(pts, width, c)
		if opts.Arrows {
			r.arrowhead(pts[len(pts)-2], pts[len(pts)-1], width, c)
		}
	}

	if opts.FontSize > 0 {
		face, err := labelFace(opts.FontSize * float64(ss))
		if err != nil {
			return nil, err
		}
		defer face.Close()
		for _, n := range doc.Nodes() {
			r.label(face, r.px(n.Bounds().Center()), n.ID)
		}
	}

	if ss == 1 {
		return r.img, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), r.img, r.img.Bounds(), draw.Over, nil)
	return out, nil
}

func labelFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// raster maps document coordinates onto a supersampled image.
type raster struct {
	img    *image.RGBA
	origin geometry.Point
	scale  float64
	pad    float64
}

func (r *raster) px(p geometry.Point) geometry.Point {
	return geometry.Pt((p.X-r.origin.X)*r.scale+r.pad, (p.Y-r.origin.Y)*r.scale+r.pad)
}

func (r *raster) project(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, 0, len(pts))
	for _, p := range pts {
		q := r.px(p)
		if len(out) > 0 && q.Equals(out[len(out)-1]) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// stroke draws each segment as a rectangle extended by half the width at
// both ends, so consecutive segments meet without gaps.
func (r *raster) stroke(pts []geometry.Point, width float64, c color.Color) {
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := d.Length()
		if l < geometry.Epsilon {
			continue
		}
		along := d.Scale(hw / l)
		n := geometry.Pt(-along.Y, along.X)
		a, b = a.Sub(along), b.Add(along)
		r.fill([]geometry.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, c)
	}
}

func (r *raster) arrowhead(from, tip geometry.Point, width float64, c color.Color) {
	d := tip.Sub(from)
	l := d.Length()
	if l < geometry.Epsilon {
		return
	}
	size := math.Max(4*width, 6)
	back := tip.Sub(d.Scale(size / l))
	n := geometry.Pt(-d.Y, d.X).Scale(size / 2 / l)
	r.fill([]geometry.Point{tip, back.Add(n), back.Sub(n)}, c)
}

// fill rasterizes one polygon. The rasterizer covers only the polygon's
// bounding box, clipped to the image.
func (r *raster) fill(poly []geometry.Point, c color.Color) {
	if len(poly) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1).
		Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

func (r *raster) label(face font.Face, center geometry.Point, text string) {
	width := font.MeasureString(face, text)
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(colorLabel),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(center.X*64) - width/2,
			Y: fixed.Int26_6(center.Y*64) + ascent*35/100,
		},
	}
	d.DrawString(text)
}

// PNGExporter exports documents as PNG images.
type PNGExporter struct {
	Options PNGOptions
}

// NewPNGExporter creates a PNG exporter with opts.
func NewPNGExporter(opts PNGOptions) *PNGExporter {
	return &PNGExporter{Options: opts}
}

// Export encodes the document as PNG.
func (e *PNGExporter) Export(doc *diagram.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, doc, e.Options); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}
