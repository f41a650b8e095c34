package graph

import "fmt"

var colorNames = []string{
	"RED",
	"BLUE",
	"GREEN",
	"ORANGE",
	"PURPLE",
	"CYAN",
	"AMBER",
	"BROWN",
	"BLUE GREY",
	"PINK",
}

// ColorName returns a display name for the color with the given
// index. Indices beyond the named palette are rendered as COLOR_<i>.
func ColorName(c int) string {
	if c >= 0 && c < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("COLOR_%d", c)
}
