package export_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkroute/diagram"
	"linkroute/export"
)

func routedPair(t *testing.T) *diagram.Document {
	t.Helper()
	doc, err := diagram.NewDocument()
	require.NoError(t, err)
	for _, n := range []struct {
		id string
		x  float64
	}{{"a", 0}, {"b", 200}} {
		_, err := doc.AddNode(n.id, diagram.NewBox(n.x, 0, 40, 40))
		require.NoError(t, err)
		_, err = doc.AddPort(n.id, n.id)
		require.NoError(t, err)
	}
	_, err = doc.AddLink("ab", "a", "b")
	require.NoError(t, err)
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"json", export.FormatJSON, false},
		{"JSON", export.FormatJSON, false},
		{"ascii", export.FormatASCII, false},
		{"text", export.FormatASCII, false},
		{"txt", export.FormatASCII, false},
		{"png", export.FormatPNG, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format export.Format
		ext    string
	}{
		{export.FormatJSON, ".json"},
		{export.FormatASCII, ".txt"},
		{export.FormatPNG, ".png"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			e, err := export.NewExporter(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, e.GetFileExtension())
			assert.NotEmpty(t, e.GetFormatName())
			assert.Contains(t, export.GetFormatDescriptions(), tt.format)
		})
	}

	_, err := export.NewExporter("invalid")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
	assert.Len(t, export.GetAvailableFormats(), 3)
}

func TestJSON(t *testing.T) {
	doc := routedPair(t)

	var buf bytes.Buffer
	require.NoError(t, export.JSON(&buf, doc))

	var got export.Routes
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Links, 1)
	assert.Equal(t, export.Route{
		ID:     "ab",
		From:   "a",
		To:     "b",
		State:  "routed",
		Points: [][2]float64{{40, 20}, {200, 20}},
	}, got.Links[0])
	assert.Contains(t, buf.String(), `"points": [`)
}

func TestJSON_DanglingLink(t *testing.T) {
	doc := routedPair(t)
	require.NoError(t, doc.RemovePort("b"))

	got := export.Collect(doc)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "a", got.Links[0].From)
	assert.Empty(t, got.Links[0].To)
	assert.Len(t, got.Links[0].Points, 2, "points kept")
}

func TestJSON_Empty(t *testing.T) {
	doc, err := diagram.NewDocument()
	require.NoError(t, err)

	out, err := export.NewJSONExporter().Export(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"links": []}`, string(out))

	_, err = export.NewJSONExporter().Export(nil)
	assert.Error(t, err)
}

func TestASCII(t *testing.T) {
	doc := routedPair(t)

	out, err := export.ASCII(doc, 0.1)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "", strings.TrimSpace(lines[0]), "margin")
	assert.Contains(t, lines[1], "┌───┐")
	assert.Contains(t, lines[3], "├")
	assert.Contains(t, lines[3], "▶")
	assert.NotContains(t, out, "\033[")

	e := export.NewASCIIExporter()
	e.Color = true
	colored, err := e.Export(doc)
	require.NoError(t, err)
	assert.Contains(t, string(colored), "\033[36m")
}

func TestPNG(t *testing.T) {
	doc := routedPair(t)
	opts := export.DefaultPNGOptions()
	opts.Scale, opts.Padding, opts.LineWidth = 1, 10, 4

	var buf bytes.Buffer
	require.NoError(t, export.PNG(&buf, doc, opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 261, b.Dx())
	assert.Equal(t, 61, b.Dy())

	// Link midway between the nodes.
	r, g, bl, _ := img.At(130, 30).RGBA()
	assert.Less(t, r>>8, uint32(100), "link is drawn in cyan")
	assert.Greater(t, g>>8, uint32(100))
	assert.Greater(t, bl>>8, uint32(100))

	// Empty space above the link stays white.
	r, g, bl, _ = img.At(130, 5).RGBA()
	for _, v := range []uint32{r, g, bl} {
		assert.GreaterOrEqual(t, v>>8, uint32(250))
	}
}

func TestPNG_Errors(t *testing.T) {
	doc := routedPair(t)

	opts := export.DefaultPNGOptions()
	opts.Scale = 0
	assert.Error(t, export.PNG(&bytes.Buffer{}, doc, opts))

	opts.Scale = 1000
	_, err := export.Rasterize(doc, opts)
	assert.ErrorIs(t, err, export.ErrImageTooLarge)
}
