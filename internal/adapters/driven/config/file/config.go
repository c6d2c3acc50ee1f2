// Package file provides the TOML-backed configuration for churnlens.
// Configuration lives in a single file under the user's home directory
// and is written atomically, same as the index artifact.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDirName is the churnlens directory under the user's home.
const DefaultDirName = ".churnlens"

// configFileName is the configuration file within the churnlens directory.
const configFileName = "config.toml"

// Config is the full churnlens configuration.
type Config struct {
	// Artifact configures where the index artifact lives.
	Artifact ArtifactConfig `toml:"artifact"`

	// Records configures the record source for builds.
	Records RecordsConfig `toml:"records"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Answer configures the answer-generation provider.
	Answer AnswerConfig `toml:"answer"`

	// Classifier configures the external churn prediction service.
	Classifier ClassifierConfig `toml:"classifier"`

	// Ask configures query defaults.
	Ask AskConfig `toml:"ask"`
}

// ArtifactConfig locates the persisted index artifact.
type ArtifactConfig struct {
	// Path is the artifact file location. Defaults to
	// ~/.churnlens/data/artifact.db.
	Path string `toml:"path"`
}

// RecordsConfig locates the structured records for index builds.
type RecordsConfig struct {
	// CSVPath is the churn dataset CSV file.
	CSVPath string `toml:"csv_path"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama" (default: openai).
	Provider string `toml:"provider"`

	// Model is the embedding model identifier.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the provider, if it needs one.
	APIKey string `toml:"api_key"`
}

// AnswerConfig selects and configures the answer-generation provider.
type AnswerConfig struct {
	// Provider is "openai", "anthropic", or "ollama". Empty disables
	// answer generation; ask then returns retrieved context only.
	Provider string `toml:"provider"`

	// Model is the generative model identifier.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the provider, if it needs one.
	APIKey string `toml:"api_key"`
}

// ClassifierConfig locates the external churn prediction service.
type ClassifierConfig struct {
	// BaseURL is the prediction service base URL. Empty disables the
	// predict and explain commands.
	BaseURL string `toml:"base_url"`
}

// AskConfig holds query defaults.
type AskConfig struct {
	// TopK is the default number of documents to retrieve (default: 5).
	TopK int `toml:"top_k"`
}

// DefaultConfig returns the configuration used before any settings are
// saved.
func DefaultConfig(homeDir string) *Config {
	return &Config{
		Artifact:  ArtifactConfig{Path: filepath.Join(homeDir, DefaultDirName, "data", "artifact.db")},
		Embedding: EmbeddingConfig{Provider: "openai"},
		Ask:       AskConfig{TopK: 5},
	}
}

// Store loads and saves the configuration file.
type Store struct {
	dir string
}

// NewStore creates a config store rooted at configDir. If configDir is
// empty, it defaults to ~/.churnlens.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, DefaultDirName)
	}
	return &Store{dir: configDir}, nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, configFileName)
}

// Load reads the configuration, filling defaults for anything unset.
// A missing file yields the defaults without error.
func (s *Store) Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Ask.TopK <= 0 {
		cfg.Ask.TopK = 5
	}
	return cfg, nil
}

// Save writes the configuration atomically.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temporary config: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing config: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing config: %w", err)
	}
	return nil
}
