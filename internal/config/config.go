// Package config reads and writes the ledgerline.yaml project file.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the ledger root.
const FileName = "ledgerline.yaml"

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Ledger    LedgerConfig `yaml:"ledger"`
	Git       GitConfig    `yaml:"git"`
	Importers []Importer   `yaml:"importers,omitempty"`
}

// LedgerConfig holds ledger-wide settings.
type LedgerConfig struct {
	Name            string `yaml:"name" env:"LEDGERLINE_NAME"`
	DefaultSymbolID string `yaml:"default_symbol_id" env:"LEDGERLINE_DEFAULT_SYMBOL"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" env:"LEDGERLINE_GIT_AUTO_COMMIT"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Importer maps a configured bank feed to a provider and a chart-of-accounts
// entry.
type Importer struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Provider  string `yaml:"provider"`
	AccountID string `yaml:"account_id"`
	SymbolID  string `yaml:"symbol_id,omitempty"`
}

// Load reads a ledgerline.yaml file from disk and applies any
// LEDGERLINE_* environment overrides.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FindImporter returns the configured importer with the given id.
func (c *Config) FindImporter(id string) (Importer, bool) {
	for _, imp := range c.Importers {
		if imp.ID == id {
			return imp, true
		}
	}
	return Importer{}, false
}

// SymbolFor returns the symbol for an importer, falling back to the
// ledger default.
func (c *Config) SymbolFor(imp Importer) string {
	if imp.SymbolID != "" {
		return imp.SymbolID
	}
	return c.Ledger.DefaultSymbolID
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Name:            name,
			DefaultSymbolID: "USD",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ledgerline",
			AuthorEmail: "ledger@ledgerline.dev",
		},
		Importers: []Importer{
			{
				ID:        "chase-card",
				Name:      "Chase credit card",
				Provider:  "chase-card",
				AccountID: "",
			},
		},
	}
}
