package main

import (
	"fmt"

	"aicoder/internal/gui"
	"aicoder/internal/log"
	"aicoder/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal user interface",
		Long: `Start the terminal project list. Drag a row with the mouse, or nudge it with
h/l and release with enter. Swiping right deletes, swiping left renames.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := opts.logToFile()
			if err != nil {
				return fmt.Errorf("error opening log file: %w", err)
			}
			defer closer.Close()

			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			var modelOpts []tui.Option
			if w := opts.startWatcher(repo); w != nil {
				defer w.Stop()
				modelOpts = append(modelOpts, tui.WithWatcher(w))
			}

			m := tui.New(repo, opts.cfg, modelOpts...)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

func guiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the graphical user interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return gui.StartGUI(opts.cfg, nil, nil)
			}

			repo, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			w := opts.startWatcher(repo)
			if w != nil {
				defer w.Stop()
			}
			log.Info("Starting GUI")
			return gui.StartGUI(opts.cfg, repo, w)
		},
	}
}
