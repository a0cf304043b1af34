package canvas

import "github.com/mattn/go-runewidth"

// RuneWidth returns the number of terminal cells r occupies: 0, 1 or 2.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FitText truncates text to fit within maxWidth, adding ellipsis if needed.
func FitText(text string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(text) <= maxWidth {
		return text
	}
	if StringWidth(ellipsis) >= maxWidth {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}
