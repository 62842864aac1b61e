// Package color implements the fixed, stable, colorblind-distinct player
// palette described in spec.md §4.4.
package color

// Color is an RGB triple. Pixel values are illustrative only — mapping to
// the actual render target is the UI adapter's concern (spec.md §4.4) — and
// are chosen to match the well-known raylib/macroquad named constants,
// since that was the original UI collaborator's palette.
type Color struct {
	R, G, B uint8
}

// Name identifies a palette entry.
type Name int

const (
	Orange Name = iota
	Blue
	Lime
	Pink
	SkyBlue
	Green
	Maroon
	Purple
	Yellow
	Red
)

func (n Name) String() string {
	switch n {
	case Orange:
		return "ORANGE"
	case Blue:
		return "BLUE"
	case Lime:
		return "LIME"
	case Pink:
		return "PINK"
	case SkyBlue:
		return "SKYBLUE"
	case Green:
		return "GREEN"
	case Maroon:
		return "MAROON"
	case Purple:
		return "PURPLE"
	case Yellow:
		return "YELLOW"
	case Red:
		return "RED"
	default:
		return "UNKNOWN"
	}
}

// Palette is the fixed 10-entry insertion-order assignment list from
// spec.md §4.4.
var Palette = [10]Color{
	Orange:  {R: 255, G: 161, B: 0},
	Blue:    {R: 0, G: 121, B: 241},
	Lime:    {R: 0, G: 158, B: 47},
	Pink:    {R: 255, G: 109, B: 194},
	SkyBlue: {R: 102, G: 191, B: 255},
	Green:   {R: 0, G: 228, B: 48},
	Maroon:  {R: 190, G: 33, B: 55},
	Purple:  {R: 135, G: 60, B: 190},
	Yellow:  {R: 253, G: 249, B: 0},
	Red:     {R: 230, G: 41, B: 55},
}

// Assigner hands out the next unused color from Palette in insertion order,
// per spec.md §4.4. Not safe for concurrent use; owned by exactly one
// session (the single-threaded cooperative model, spec.md §5).
type Assigner struct {
	next int
}

// Next returns the next unused color and its name. Returns false once all
// MAX_PLAYERS (<=10) colors have been handed out.
func (a *Assigner) Next() (Name, Color, bool) {
	if a.next >= len(Palette) {
		return 0, Color{}, false
	}
	n := Name(a.next)
	a.next++
	return n, Palette[n], true
}
