//go:build !nogui

package gui

import (
	"aicoder/internal/config"
	"aicoder/internal/store"
	"aicoder/internal/watch"
)

// StartGUI opens the project window and blocks until it is closed.
func StartGUI(cfg *config.Config, repo store.Repository, watcher *watch.Watcher) error {
	gui, err := NewFactory(cfg, repo, watcher).Create()
	if err != nil {
		return err
	}
	gui.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
