package canvas

// Arms of a box-drawing character.
const (
	armN uint8 = 1 << iota
	armE
	armS
	armW
)

// CharacterMerger combines box-drawing characters drawn on the same cell,
// so that crossing and touching lines become junctions.
type CharacterMerger struct {
	arms   map[rune]uint8
	byArms map[uint8]rune
}

// NewCharacterMerger creates a merger with the light box-drawing set.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		arms: map[rune]uint8{
			'─': armE | armW,
			'│': armN | armS,
			'┌': armE | armS, '╭': armE | armS,
			'┐': armW | armS, '╮': armW | armS,
			'└': armN | armE, '╰': armN | armE,
			'┘': armN | armW, '╯': armN | armW,
			'├': armN | armE | armS,
			'┤': armN | armW | armS,
			'┬': armE | armS | armW,
			'┴': armN | armE | armW,
			'┼': armN | armE | armS | armW,
			'╵': armN, '╶': armE, '╷': armS, '╴': armW,
			'-': armE | armW,
			'|': armN | armS,
			'+': armN | armE | armS | armW,
		},
		byArms: make(map[uint8]rune),
	}
	for _, r := range "─│┌┐└┘├┤┬┴┼╵╶╷╴" {
		m.byArms[m.arms[r]] = r
	}
	return m
}

// Merge combines two characters according to box-drawing rules.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' || existing == '\x00' {
		return new
	}
	if existing == new {
		return existing
	}
	// Arrows are never overwritten.
	if isArrow(existing) {
		return existing
	}
	if isArrow(new) {
		return new
	}
	a, okA := m.arms[existing]
	b, okB := m.arms[new]
	if !okA || !okB {
		return existing
	}
	if isASCII(existing) || isASCII(new) {
		if a|b == armE|armW {
			return '-'
		}
		if a|b == armN|armS {
			return '|'
		}
		return '+'
	}
	if r, ok := m.byArms[a|b]; ok {
		return r
	}
	return existing
}

// Connects reports whether r has an arm pointing in the given direction
// ('N', 'E', 'S' or 'W').
func (m *CharacterMerger) Connects(r rune, dir rune) bool {
	a, ok := m.arms[r]
	if !ok {
		return false
	}
	switch dir {
	case 'N':
		return a&armN != 0
	case 'E':
		return a&armE != 0
	case 'S':
		return a&armS != 0
	case 'W':
		return a&armW != 0
	}
	return false
}

func isASCII(r rune) bool {
	return r == '-' || r == '|' || r == '+'
}

// isArrow checks if a character is an arrow.
func isArrow(r rune) bool {
	switch r {
	case '▶', '◀', '▲', '▼', '>', '<', '^', 'v':
		return true
	}
	return false
}
