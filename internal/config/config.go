package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"docdex/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version     int            `toml:"version"`
	DocsDir     string         `toml:"docs_dir"`
	HistoryPath string         `toml:"history_path"`
	MaxRecent   int            `toml:"max_recent"`
	UISettings  UISettings     `toml:"ui"`
	Examples    []ExampleEntry `toml:"examples"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowCategories bool `toml:"show_categories"`
	PagerOnEnter   bool `toml:"pager_on_enter"`
}

// ExampleEntry declares one catalog example to index alongside discovered docs
type ExampleEntry struct {
	ID           string `toml:"id"`
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	Content      string `toml:"content"`
	URL          string `toml:"url"`
	Category     string `toml:"category"`
	LearnMoreURL string `toml:"learn_more_url"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	docdexDir := filepath.Join(configDir, "docdex")
	os.MkdirAll(docdexDir, 0755)

	return &configService{
		filePath: filepath.Join(docdexDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// First run: write the defaults so the user has a file to edit
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			log.Printf("Could not write default config: %v", err)
		}

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{DocsDir: cfg.DocsDir})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{DocsDir: cfg.DocsDir})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyLimits(&cfg)

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version:   1,
		DocsDir:   "docs",
		MaxRecent: 10,
		UISettings: UISettings{
			ShowCategories: true,
			PagerOnEnter:   true,
		},
	}
	applyLimits(cfg)
	return cfg
}

// DefaultHistoryPath returns the default location of the recent-queries file
func DefaultHistoryPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "docdex", "recent.json")
}

// applyLimits normalizes out-of-range settings
func applyLimits(cfg *Config) {
	if cfg.MaxRecent <= 0 {
		cfg.MaxRecent = 10
	}
	if cfg.MaxRecent > 50 {
		cfg.MaxRecent = 50
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = DefaultHistoryPath()
	}
}
