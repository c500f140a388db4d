// Package scaffold creates a fresh voice-vault directory layout.
package scaffold

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Options controls scaffold behavior.
type Options struct {
	GitInit bool // run git init after scaffolding
}

// Vault directories relative to the vault root.
var vaultDirs = []string{
	"Inbox",
	"Notes",
	"Archive",
	".voice-vault",
}

// Init creates a new voice-vault at targetPath.
func Init(targetPath string, opts Options) error {
	targetPath, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Refuse if target already contains vault state.
	if dirExists(filepath.Join(targetPath, ".voice-vault")) {
		return fmt.Errorf("%s already contains .voice-vault/, refusing to overwrite", targetPath)
	}

	for _, dir := range vaultDirs {
		if err := os.MkdirAll(filepath.Join(targetPath, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	vaultName := filepath.Base(targetPath)
	readme := readmeContent(vaultName)
	readmePath := filepath.Join(targetPath, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		if err := os.WriteFile(readmePath, []byte(readme), 0o644); err != nil {
			return fmt.Errorf("write README: %w", err)
		}
	}

	gitignorePath := filepath.Join(targetPath, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); err != nil {
			return fmt.Errorf("write .gitignore: %w", err)
		}
	}

	if opts.GitInit {
		cmd := exec.Command("git", "init", targetPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}

	return nil
}

func readmeContent(vaultName string) string {
	return fmt.Sprintf(`# %s

A voice-journal vault managed by vj.

- **Inbox/** drop transcription output here (.txt, .md, or .zst)
- **Notes/** rendered journal notes, grouped by year
- **Archive/** compressed copies of processed transcripts
- **.voice-vault/** processing state (journal index)

Run `+"`vj watch`"+` to process drops as they arrive, or `+"`vj scan`"+`
to sweep the inbox once.
`, vaultName)
}

const gitignoreContent = `.voice-vault/
Inbox/
`

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
