// Package check runs environment diagnostics for the vj doctor command.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/config"
	"github.com/suykerbuyk/voice-vault/internal/journal"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "vj check\n\n  no checks ran\n"
	}

	// Find max name length for alignment.
	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("vj check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Always passes — broken TOML
// is caught by config.Load before we get here.
func CheckConfig() Result {
	cfgPath := filepath.Join(config.ConfigDir(), "config.toml")
	return Result{
		Name:   "config",
		Status: Pass,
		Detail: config.CompressHome(cfgPath),
	}
}

// CheckVaultPath checks whether the vault directory exists.
func CheckVaultPath(path string) Result {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Result{Name: "vault", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "vault", Status: Fail, Detail: path + " not found"}
}

// CheckObsidian checks whether .obsidian/ exists inside the vault.
func CheckObsidian(path string) Result {
	obsDir := filepath.Join(path, ".obsidian")
	if info, err := os.Stat(obsDir); err == nil && info.IsDir() {
		return Result{Name: "obsidian", Status: Pass, Detail: ".obsidian/ found"}
	}
	return Result{Name: "obsidian", Status: Warn, Detail: ".obsidian/ not found (not yet opened in Obsidian)"}
}

// CheckInbox checks whether the drop directory exists.
func CheckInbox(inboxDir string) Result {
	if info, err := os.Stat(inboxDir); err == nil && info.IsDir() {
		return Result{Name: "inbox", Status: Pass, Detail: config.CompressHome(inboxDir)}
	}
	return Result{Name: "inbox", Status: Warn, Detail: inboxDir + " not found (run vj init)"}
}

// CheckNotes checks whether the Notes directory exists and reports note count.
func CheckNotes(notesDir string) Result {
	if _, err := os.ReadDir(notesDir); err != nil {
		return Result{Name: "notes", Status: Warn, Detail: "Notes/ not found (fresh vault)"}
	}
	return Result{Name: "notes", Status: Pass, Detail: fmt.Sprintf("Notes/ (%d notes)", countMD(notesDir))}
}

func countMD(dir string) int {
	count := 0
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".md") {
			count++
		}
		return nil
	})
	return count
}

// CheckStateDir checks whether the .voice-vault state directory exists.
func CheckStateDir(stateDir string) Result {
	if info, err := os.Stat(stateDir); err == nil && info.IsDir() {
		return Result{Name: "state", Status: Pass, Detail: ".voice-vault/ found"}
	}
	return Result{Name: "state", Status: Warn, Detail: ".voice-vault/ not found (fresh vault)"}
}

// CheckJournal validates the journal database by opening it and counting
// entries.
func CheckJournal(journalPath string) Result {
	if _, err := os.Stat(journalPath); err != nil {
		return Result{Name: "journal", Status: Warn, Detail: "journal.db not found yet"}
	}

	s, err := journal.Open(journalPath)
	if err != nil {
		return Result{Name: "journal", Status: Fail, Detail: "journal.db cannot be opened"}
	}
	defer s.Close()

	n, err := s.Count()
	if err != nil {
		return Result{Name: "journal", Status: Fail, Detail: "journal.db unreadable"}
	}
	return Result{Name: "journal", Status: Pass, Detail: fmt.Sprintf("journal.db (%d entries)", n)}
}

// CheckEngine checks the configured summarization backend.
func CheckEngine(ecfg config.EngineConfig) Result {
	switch ecfg.Provider {
	case "ollama":
		return Result{Name: "engine", Status: Pass,
			Detail: fmt.Sprintf("ollama/%s at %s", ecfg.Model, ecfg.BaseURL)}
	case "openai":
		keyEnv := ecfg.APIKeyEnv
		if keyEnv == "" {
			return Result{Name: "engine", Status: Fail, Detail: "api_key_env not configured"}
		}
		if os.Getenv(keyEnv) != "" {
			return Result{Name: "engine", Status: Pass,
				Detail: fmt.Sprintf("openai/%s, %s set", ecfg.Model, keyEnv)}
		}
		return Result{Name: "engine", Status: Warn, Detail: keyEnv + " not set"}
	case "none", "":
		return Result{Name: "engine", Status: Warn, Detail: "no engine configured"}
	default:
		return Result{Name: "engine", Status: Fail, Detail: "unknown provider " + ecfg.Provider}
	}
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfig())
	results = append(results, CheckVaultPath(cfg.VaultPath))
	results = append(results, CheckObsidian(cfg.VaultPath))
	results = append(results, CheckInbox(cfg.InboxDir()))
	results = append(results, CheckNotes(cfg.NotesDir()))
	results = append(results, CheckStateDir(cfg.StateDir()))
	results = append(results, CheckJournal(cfg.JournalPath()))
	results = append(results, CheckEngine(cfg.Engine))

	return Report{Results: results}
}
