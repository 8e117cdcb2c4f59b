//go:build nogui

package gui

import (
	"fmt"

	"aicoder/internal/config"
	"aicoder/internal/store"
	"aicoder/internal/watch"
)

// StartGUI is a stub implementation for builds with GUI disabled
func StartGUI(cfg *config.Config, repo store.Repository, watcher *watch.Watcher) error {
	return fmt.Errorf("GUI not available in this build, use 'aicoder tui'")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
