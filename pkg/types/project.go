package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used when a project date is shown in a list row.
const DateLayout = "2006-01-02"

// Project is a coding-assistant project as persisted by a store.
type Project struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Code      string    `json:"code,omitempty" yaml:"code,omitempty"`
}

// Date returns the creation date formatted for display, or "" when unset.
func (p Project) Date() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Local().Format(DateLayout)
}

// ListItem converts the project into the row model used by the project list.
func (p Project) ListItem() ListItem {
	return ListItem{
		ID:   p.ID,
		Name: p.Title,
		Date: p.Date(),
	}
}

// String returns a human-readable representation
func (p Project) String() string {
	if len(p.Tags) == 0 {
		return fmt.Sprintf("%s  %s  %s", p.ID, p.Date(), p.Title)
	}
	return fmt.Sprintf("%s  %s  %s [%s]", p.ID, p.Date(), p.Title, strings.Join(p.Tags, ", "))
}

// ListItem is one row of the project list. Name and Date are display
// fields only; the swipe engine keys everything on ID.
type ListItem struct {
	ID   string
	Name string
	Date string
}

// FilterValue is used by glob filtering and by bubbles list components.
func (i ListItem) FilterValue() string { return i.Name }

// ListItems converts projects into rows, preserving order.
func ListItems(projects []Project) []ListItem {
	items := make([]ListItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.ListItem())
	}
	return items
}
