//go:build !nogui

package gui

import (
	"image/color"
	"strconv"

	"aicoder/internal/config"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// palette is the configured theme in screen colours.
type palette struct {
	row    color.Color
	text   color.Color
	muted  color.Color
	delete color.Color
	edit   color.Color
}

func newPalette(c config.Colors) palette {
	def := config.GetTheme("default")
	return palette{
		row:    parseColor(c.Row, parseColor(def.Row, color.Black)),
		text:   color.White,
		muted:  parseColor(c.Muted, color.Gray{Y: 0x8a}),
		delete: parseColor(c.Delete, parseColor(def.Delete, color.Black)),
		edit:   parseColor(c.Edit, parseColor(def.Edit, color.Black)),
	}
}

// parseColor understands the two forms lipgloss accepts: hex strings and
// xterm-256 colour numbers.
func parseColor(s string, fallback color.Color) color.Color {
	if s == "" {
		return fallback
	}
	if s[0] == '#' {
		c, err := colorful.Hex(s)
		if err != nil {
			return fallback
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return fallback
	}
	r, g, b := termenv.ConvertToRGB(termenv.ANSI256Color(n)).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
