package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"aicoder/internal/errors"
	"aicoder/internal/swipe"

	"gopkg.in/yaml.v3"
)

// Store drivers understood by the store package.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// DefaultTerminalFlingVelocity is in terminal cells per second. A cell is
// much coarser than a pixel, so the terminal gets its own fling threshold.
const DefaultTerminalFlingVelocity = 80.0

// Config represents the application configuration structure.
type Config struct {
	Swipe struct {
		CommitThreshold       float64 `yaml:"commit_threshold"`        // Progress a slow release must exceed
		FlingVelocity         float64 `yaml:"fling_velocity"`          // Pixels per second that commit regardless of progress
		TerminalFlingVelocity float64 `yaml:"terminal_fling_velocity"` // Cells per second, used by the TUI
		MinProgress           float64 `yaml:"min_progress"`            // Below this a release always cancels
		Mirror                bool    `yaml:"mirror"`                  // Swap delete/edit directions
	} `yaml:"swipe"`
	Store struct {
		Driver string `yaml:"driver"` // yaml or sqlite
		Path   string `yaml:"path"`   // Store file; empty means the per-driver default
		Watch  bool   `yaml:"watch"`  // Reload the list when the store file changes
	} `yaml:"store"`
	UI struct {
		ConfirmDelete bool   `yaml:"confirm_delete"` // Ask before deleting a swiped project
		Theme         string `yaml:"theme"`          // Theme name
		Colors        Colors `yaml:"colors"`         // Overrides for the theme colours
	} `yaml:"ui"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn, error
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Log file; empty means stderr
	} `yaml:"log"`
}

// Colors are lipgloss colour strings (ANSI number or hex).
type Colors struct {
	Delete string `yaml:"delete,omitempty"`
	Edit   string `yaml:"edit,omitempty"`
	Row    string `yaml:"row,omitempty"`
	Muted  string `yaml:"muted,omitempty"`
	Accent string `yaml:"accent,omitempty"`
}

// DefaultPath returns ~/.config/aicoder/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "aicoder", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyTheme(cfg.UI.Theme)
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshalling over the defaults keeps every key the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.ApplyTheme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Swipe.CommitThreshold = swipe.DefaultCommitThreshold
	cfg.Swipe.FlingVelocity = swipe.DefaultFlingVelocity
	cfg.Swipe.TerminalFlingVelocity = DefaultTerminalFlingVelocity
	cfg.Swipe.MinProgress = swipe.DefaultMinProgress

	cfg.Store.Driver = DriverYAML
	cfg.Store.Watch = true

	cfg.UI.ConfirmDelete = true
	cfg.UI.Theme = "default"

	cfg.Log.Level = "info"

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.ApplyTheme(cfg.UI.Theme)
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if err := c.Policy(false).Validate(); err != nil {
		return errors.NewConfigError("invalid swipe settings", "swipe", errors.InvalidConfig, err)
	}
	if v := c.Swipe.TerminalFlingVelocity; !(v > 0) || math.IsInf(v, 0) {
		return errors.NewConfigError("terminal fling velocity must be positive", "swipe.terminal_fling_velocity", errors.InvalidConfig, nil)
	}

	switch c.Store.Driver {
	case DriverYAML, DriverSQLite:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown store driver %q", c.Store.Driver), "store.driver", errors.InvalidConfig, nil)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown log level %q", c.Log.Level), "log.level", errors.InvalidConfig, nil)
	}

	return nil
}

// Policy returns the commit policy for a pointer host, or for the
// terminal when terminal is true.
func (c *Config) Policy(terminal bool) swipe.Policy {
	p := swipe.Policy{
		Threshold:     c.Swipe.CommitThreshold,
		FlingVelocity: c.Swipe.FlingVelocity,
		MinProgress:   c.Swipe.MinProgress,
	}
	if terminal {
		p.FlingVelocity = c.Swipe.TerminalFlingVelocity
	}
	return p
}

// Bindings returns the direction to action mapping.
func (c *Config) Bindings() swipe.Bindings {
	b := swipe.DefaultBindings()
	if c.Swipe.Mirror {
		return b.Mirrored()
	}
	return b
}

// StorePath returns the configured store path, or the default data file
// for the driver under ~/.local/share/aicoder.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return expandHome(c.Store.Path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := "projects.yaml"
	if c.Store.Driver == DriverSQLite {
		name = "projects.db"
	}
	return filepath.Join(home, ".local", "share", "aicoder", name), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// GetTheme returns a predefined theme by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) Colors {
	themes := map[string]Colors{
		"default": {
			Delete: "#FF2D55", // Red, as on the phone
			Edit:   "#007AFF", // Blue
			Row:    "#141625", // Card background
			Muted:  "245",     // Grey
			Accent: "#7B61FF", // Purple
		},
		"neon": {
			Delete: "198",
			Edit:   "51",
			Row:    "234",
			Muted:  "244",
			Accent: "201",
		},
		"monochrome": {
			Delete: "255",
			Edit:   "250",
			Row:    "235",
			Muted:  "243",
			Accent: "252",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme fills every colour not set explicitly from the named theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)
	if name == "" {
		name = "default"
	}
	c.UI.Theme = name

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.UI.Colors.Delete, theme.Delete)
	fill(&c.UI.Colors.Edit, theme.Edit)
	fill(&c.UI.Colors.Row, theme.Row)
	fill(&c.UI.Colors.Muted, theme.Muted)
	fill(&c.UI.Colors.Accent, theme.Accent)
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "neon", "monochrome"}
}
