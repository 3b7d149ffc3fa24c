package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

// Predefined colors used by the drawings.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorGray
)
