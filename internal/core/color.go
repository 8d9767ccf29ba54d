package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Tag is the palette name used by simulation code (particles, obstacles).
// Renderers translate tags into their own color space.
type Tag string

// Palette tags shared by the game and its renderers.
const (
	TagSmash Tag = "smash" // obstacle destroyed by an attack
	TagOrb   Tag = "orb"   // orb collected
	TagHurt  Tag = "hurt"  // player took damage
)

// TagColor maps a palette tag to a terminal color.
func TagColor(t Tag) Color {
	switch t {
	case TagSmash:
		return ColorOrange
	case TagOrb:
		return ColorBrightCyan
	case TagHurt:
		return ColorBrightRed
	default:
		return ColorWhite
	}
}
