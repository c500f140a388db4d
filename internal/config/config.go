package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all voice-vault configuration. It is loaded once and passed
// explicitly into the pipeline; nothing reads it ambiently mid-run.
type Config struct {
	VaultPath string `toml:"vault_path"`

	Engine   EngineConfig   `toml:"engine"`
	Chunking ChunkingConfig `toml:"chunking"`
	Cache    CacheConfig    `toml:"cache"`
	Privacy  PrivacyConfig  `toml:"privacy"`
	Archive  ArchiveConfig  `toml:"archive"`
	Watch    WatchConfig    `toml:"watch"`
}

// EngineConfig selects and configures the summarization backend.
type EngineConfig struct {
	Provider       string  `toml:"provider"` // "openai", "ollama", or "none"
	Model          string  `toml:"model"`
	BaseURL        string  `toml:"base_url"`
	APIKeyEnv      string  `toml:"api_key_env"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxRetries     int     `toml:"max_retries"`
}

// ChunkingConfig bounds per-call text size.
type ChunkingConfig struct {
	TokenBudget   int `toml:"token_budget"`    // estimate above this triggers chunking
	MaxChunkWords int `toml:"max_chunk_words"` // words per chunk
}

// CacheConfig bounds the in-memory result cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// PrivacyConfig controls transcript redaction before remote engine calls.
type PrivacyConfig struct {
	Redact bool `toml:"redact"`
}

type ArchiveConfig struct {
	Compress bool `toml:"compress"`
}

// WatchConfig configures the transcript drop-directory watcher.
type WatchConfig struct {
	DropDir    string `toml:"drop_dir"` // empty means <vault>/Inbox
	DebounceMS int    `toml:"debounce_ms"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VaultPath: "~/journal/voice-vault",
		Engine: EngineConfig{
			Provider:       "ollama",
			Model:          "llama3.2",
			BaseURL:        "http://localhost:11434",
			APIKeyEnv:      "OPENAI_API_KEY",
			Temperature:    0.3,
			TimeoutSeconds: 60,
			MaxRetries:     2,
		},
		Chunking: ChunkingConfig{
			TokenBudget:   3000,
			MaxChunkWords: 2000,
		},
		Cache: CacheConfig{
			MaxEntries: 128,
		},
		Privacy: PrivacyConfig{
			Redact: true,
		},
		Archive: ArchiveConfig{
			Compress: true,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	paths := configPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// Expand ~ in paths
	cfg.VaultPath = expandHome(cfg.VaultPath)
	cfg.Watch.DropDir = expandHome(cfg.Watch.DropDir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "voice-vault", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "voice-vault", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// InboxDir returns the drop directory watched for new transcripts.
func (c Config) InboxDir() string {
	if c.Watch.DropDir != "" {
		return c.Watch.DropDir
	}
	return filepath.Join(c.VaultPath, "Inbox")
}

// NotesDir returns the vault's Notes directory.
func (c Config) NotesDir() string {
	return filepath.Join(c.VaultPath, "Notes")
}

// ArchiveDir returns the vault's transcript archive directory.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.VaultPath, "Archive")
}

// StateDir returns the .voice-vault state directory inside the vault.
func (c Config) StateDir() string {
	return filepath.Join(c.VaultPath, ".voice-vault")
}

// JournalPath returns the SQLite journal database path.
func (c Config) JournalPath() string {
	return filepath.Join(c.StateDir(), "journal.db")
}
