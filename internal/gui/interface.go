//go:build !nogui

package gui

import (
	"aicoder/internal/config"
	"aicoder/internal/store"
	"aicoder/internal/watch"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config  *config.Config
	repo    store.Repository
	watcher *watch.Watcher
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, repo store.Repository, watcher *watch.Watcher) *Factory {
	return &Factory{
		config:  cfg,
		repo:    repo,
		watcher: watcher,
	}
}

// Create returns a new GUI instance
func (f *Factory) Create() (Interface, error) {
	return NewApp(f.config, f.repo, f.watcher), nil
}
