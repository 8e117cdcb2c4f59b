package views

import (
	"fmt"
	"strings"

	"aicoder/internal/tui/common"
	"aicoder/internal/tui/components"
	"aicoder/internal/tui/styles"
)

// RenderMainView draws the project list: a title line, a blank line, the
// visible rows and a three line footer (prompt, status, help).
func RenderMainView(m common.ModelReader, st styles.Styles) string {
	var sb strings.Builder

	sb.WriteString(renderTitle(m, st))
	sb.WriteString("\n\n")

	rows := m.Rows()
	width := m.RowWidth()
	visible := m.VisibleRows()
	if len(rows) == 0 {
		sb.WriteString(st.Help.Render(emptyText(m)))
		visible--
	}
	for i := m.Offset(); i < len(rows) && i < m.Offset()+visible; i++ {
		sb.WriteString(components.RenderRow(rows[i], width, i == m.Cursor(), st))
		sb.WriteString("\n")
		visible--
	}
	for ; visible > 0; visible-- {
		sb.WriteString("\n")
	}

	sb.WriteString(m.Prompt() + "\n")
	sb.WriteString(m.Status() + "\n")
	sb.WriteString(m.HelpView())

	return st.App.Render(sb.String())
}

func renderTitle(m common.ModelReader, st styles.Styles) string {
	title := st.Title.Render(fmt.Sprintf("Projects (%d)", m.Total()))
	if f := m.Filter(); f != "" {
		title += st.Help.Render(fmt.Sprintf("  filter: %s", f))
	}
	return title
}

func emptyText(m common.ModelReader) string {
	if m.Total() > 0 {
		return "No project matches the filter\n"
	}
	return "No projects yet. Press a to add one\n"
}
