package canvas

const ansiReset = "\033[0m"

// Palette is the order link colors are handed out in. Each entry carries
// the ANSI foreground code ColoredString writes for it.
var Palette = []struct {
	Name string
	ANSI string
}{
	{"cyan", "\033[36m"},
	{"yellow", "\033[33m"},
	{"magenta", "\033[35m"},
	{"green", "\033[32m"},
	{"blue", "\033[34m"},
	{"red", "\033[31m"},
}

// PaletteColor returns the name of the i-th palette color, wrapping around.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)].Name
}

// ANSI returns the escape code of a palette color, or "" for names outside
// the palette.
func ANSI(name string) string {
	for _, p := range Palette {
		if p.Name == name {
			return p.ANSI
		}
	}
	return ""
}
