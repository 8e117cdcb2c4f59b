package common

import "aicoder/internal/swipe"

// Mode is what the keyboard currently drives.
type Mode int

const (
	// Normal is list navigation and keyboard swiping
	Normal Mode = iota
	// Confirm waits for y/n before deleting a swiped project
	Confirm
	// Rename edits the title of a swiped project
	Rename
	// Add creates a new project
	Add
	// Filter edits the glob filter
	Filter
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Confirm:
		return "confirm"
	case Rename:
		return "rename"
	case Add:
		return "add"
	case Filter:
		return "filter"
	default:
		return "unknown"
	}
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Rows() []swipe.Row
	Cursor() int
	Offset() int
	VisibleRows() int
	RowWidth() int
	Mode() Mode
	Filter() string
	Total() int
	HelpView() string
	Prompt() string
	Status() string
}
