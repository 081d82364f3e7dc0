package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorWhite
	ColorPink
	ColorLime
	ColorGray
	ColorYellow
)
