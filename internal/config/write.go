package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the voice-vault config directory path.
// Uses $XDG_CONFIG_HOME/voice-vault if set, otherwise ~/.config/voice-vault.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "voice-vault")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "voice-vault")
}

// WriteDefault writes a default config.toml pointing to vaultPath.
// Returns the config file path. Skips if config.toml already exists.
func WriteDefault(vaultPath string) (string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	portablePath := CompressHome(vaultPath)

	content := fmt.Sprintf(`vault_path = %q

[engine]
provider = "ollama"
model = "llama3.2"
base_url = "http://localhost:11434"
api_key_env = "OPENAI_API_KEY"
temperature = 0.3
timeout_seconds = 60
max_retries = 2

[chunking]
token_budget = 3000
max_chunk_words = 2000

[cache]
max_entries = 128

[privacy]
redact = true

[archive]
compress = true

[watch]
debounce_ms = 500
`, portablePath)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
