package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"aicoder/internal/config"
	"aicoder/internal/log"
	"aicoder/internal/store"
	"aicoder/internal/watch"

	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags and the configuration loaded
// from them.
type rootOptions struct {
	cfgFile     string
	debug       bool
	storeDriver string
	storePath   string

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "aicoder",
		Short:   "Browse and manage AI coding assistant projects",
		Long:    `aicoder lists your coding projects. Swipe a row right to delete it, left to rename it.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/aicoder/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.storeDriver, "store-driver", "", "project store driver: yaml or sqlite")
	flags.StringVar(&opts.storePath, "store-path", "", "project store file")

	rootCmd.AddCommand(tuiCmd(opts))
	rootCmd.AddCommand(guiCmd(opts))
	rootCmd.AddCommand(projectsCmd(opts))
	rootCmd.AddCommand(swipeCmd(opts))

	return rootCmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("store-driver") {
		cfg.Store.Driver = o.storeDriver
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path = o.storePath
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	o.configureLogging(cmd.ErrOrStderr())
	return nil
}

func (o *rootOptions) configureLogging(w io.Writer) {
	var logOpts []log.Option
	logOpts = append(logOpts, log.WithOutput(w), log.WithLevel(o.cfg.Log.Level))
	if o.cfg.Log.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)
}

// logToFile moves logging off the terminal for the full screen UI. With no
// log file configured, logs are dropped.
func (o *rootOptions) logToFile() (io.Closer, error) {
	if o.cfg.Log.File == "" {
		o.configureLogging(io.Discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(o.cfg.Log.File), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(o.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	o.configureLogging(f)
	return f, nil
}

func (o *rootOptions) openStore(ctx context.Context) (store.Repository, error) {
	repo, err := store.OpenConfigured(ctx, o.cfg)
	if err != nil {
		return nil, err
	}
	log.LogWithFields(log.F("driver", o.cfg.Store.Driver), log.F("path", repo.Path())).Debug("Opened project store")
	return repo, nil
}

// startWatcher watches the store file when enabled. A watcher that cannot
// start only costs live reloads, so the failure is logged and nil returned.
func (o *rootOptions) startWatcher(repo store.Repository) *watch.Watcher {
	if !o.cfg.Store.Watch {
		return nil
	}
	path := repo.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.LogWithError(err).Warn("Not watching project store")
		return nil
	}
	var extra []string
	if o.cfg.Store.Driver == config.DriverSQLite {
		extra = append(extra, path+"-wal")
	}
	w, err := watch.New(path, extra...)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		log.LogWithError(err).Warn("Not watching project store")
		return nil
	}
	return w
}
