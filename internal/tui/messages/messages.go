package messages

import (
	"aicoder/internal/watch"
	"aicoder/pkg/types"
)

type ErrorMsg struct {
	Err error
}

// ProjectsLoadedMsg carries a fresh listing of the store.
type ProjectsLoadedMsg struct {
	Projects []types.Project
	Err      error
}

// StoreChangedMsg reports that the store file changed on disk.
type StoreChangedMsg struct {
	Change watch.Change
}

type ProjectDeletedMsg struct {
	Project types.ListItem
	Err     error
}

type ProjectRenamedMsg struct {
	Project types.ListItem
	Title   string
	Err     error
}

type ProjectAddedMsg struct {
	Project types.Project
	Err     error
}
