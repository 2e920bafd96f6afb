package core

import "strings"

// Color represents a foreground color for a screen cell.
// Each color maps to an ANSI 256-color code for terminal output.
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

var colorInfo = [...]struct {
	name string
	ansi string
}{
	ColorDefault:       {"default", ""},
	ColorRed:           {"red", "1"},
	ColorGreen:         {"green", "2"},
	ColorYellow:        {"yellow", "3"},
	ColorBlue:          {"blue", "4"},
	ColorMagenta:       {"magenta", "5"},
	ColorCyan:          {"cyan", "6"},
	ColorWhite:         {"white", "7"},
	ColorBrightRed:     {"bright_red", "9"},
	ColorBrightGreen:   {"bright_green", "10"},
	ColorBrightYellow:  {"bright_yellow", "11"},
	ColorBrightBlue:    {"bright_blue", "12"},
	ColorBrightMagenta: {"bright_magenta", "13"},
	ColorBrightCyan:    {"bright_cyan", "14"},
	ColorBrightWhite:   {"bright_white", "15"},
	ColorOrange:        {"orange", "208"},
	ColorGray:          {"gray", "245"},
}

// Colors returns every defined color, ColorDefault first.
func Colors() []Color {
	out := make([]Color, len(colorInfo))
	for i := range colorInfo {
		out[i] = Color(i)
	}
	return out
}

// String returns the color's name as used in sprite files.
func (c Color) String() string {
	if int(c) < len(colorInfo) {
		return colorInfo[c].name
	}
	return "default"
}

// ANSI returns the 256-color code, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) < len(colorInfo) {
		return colorInfo[c].ansi
	}
	return ""
}

// ParseColor converts a color name to a Color. Matching ignores case and
// surrounding space, and accepts "grey" and dashes for underscores.
// An empty name is ColorDefault. Returns ColorDefault and false if the
// name is not recognized.
func ParseColor(s string) (Color, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch name {
	case "":
		return ColorDefault, true
	case "grey":
		return ColorGray, true
	}
	for i, info := range colorInfo {
		if info.name == name {
			return Color(i), true
		}
	}
	return ColorDefault, false
}
