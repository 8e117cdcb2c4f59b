package components

import (
	"math"

	"aicoder/internal/swipe"
	"aicoder/internal/tui/styles"

	"github.com/mattn/go-runewidth"
)

// RenderRow draws one project row of the given width. While the row is
// dragged the content slides aside and a coloured band, as wide as the
// swipe progress, opens on the edge the gesture started from.
func RenderRow(row swipe.Row, width int, selected bool, st styles.Styles) string {
	if width <= 0 {
		return ""
	}
	rowStyle := st.Row
	if selected {
		rowStyle = st.Selected
	}

	band := 0
	if row.Overlay.Visible {
		band = int(math.Round(row.Overlay.Fraction * float64(width)))
		if band > width {
			band = width
		}
	}
	content := rowText(row, width-band, selected)
	if band == 0 {
		return rowStyle.Render(content)
	}

	bandStyle := st.Edit
	if row.Overlay.Action == swipe.ActionDelete {
		bandStyle = st.Delete
	}
	label := bandLabel(row.Overlay.Label, band)
	if row.Overlay.Anchor == swipe.AnchorStart {
		return bandStyle.Render(label) + rowStyle.Render(content)
	}
	return rowStyle.Render(content) + bandStyle.Render(label)
}

func rowText(row swipe.Row, width int, selected bool) string {
	if width <= 0 {
		return ""
	}
	marker := "  "
	if selected {
		marker = "> "
	}
	date := row.Item.Date
	name := marker + row.Item.Name
	gap := width - runewidth.StringWidth(name) - runewidth.StringWidth(date)
	if date == "" || gap < 1 {
		return runewidth.FillRight(runewidth.Truncate(name, width, "…"), width)
	}
	return name + runewidth.FillRight("", gap) + date
}

func bandLabel(label string, width int) string {
	text := " " + label + " "
	if runewidth.StringWidth(text) > width {
		text = ""
	}
	return runewidth.FillRight(text, width)
}
