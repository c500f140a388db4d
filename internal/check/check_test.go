package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suykerbuyk/voice-vault/internal/config"
	"github.com/suykerbuyk/voice-vault/internal/journal"
)

func TestCheckVaultPath_Pass(t *testing.T) {
	dir := t.TempDir()
	r := CheckVaultPath(dir)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckVaultPath_Fail(t *testing.T) {
	r := CheckVaultPath("/nonexistent/vault/path")
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckObsidian_Pass(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, ".obsidian"), 0o755)
	r := CheckObsidian(dir)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckObsidian_Warn(t *testing.T) {
	dir := t.TempDir()
	r := CheckObsidian(dir)
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckInbox(t *testing.T) {
	dir := t.TempDir()
	if r := CheckInbox(dir); r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r := CheckInbox(filepath.Join(dir, "missing")); r.Status != Warn {
		t.Errorf("expected Warn for missing inbox, got %s", r.Status)
	}
}

func TestCheckNotes_Pass(t *testing.T) {
	dir := t.TempDir()
	notesDir := filepath.Join(dir, "Notes")
	os.MkdirAll(filepath.Join(notesDir, "2026"), 0o755)
	os.WriteFile(filepath.Join(notesDir, "2026", "2026-08-23-01.md"), []byte("# Note"), 0o644)
	os.WriteFile(filepath.Join(notesDir, "2026", "2026-08-23-02.md"), []byte("# Note"), 0o644)

	r := CheckNotes(notesDir)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r.Detail != "Notes/ (2 notes)" {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckNotes_Warn(t *testing.T) {
	r := CheckNotes("/nonexistent/notes")
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckStateDir_Pass(t *testing.T) {
	dir := t.TempDir()
	r := CheckStateDir(dir)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckStateDir_Warn(t *testing.T) {
	r := CheckStateDir("/nonexistent/state")
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckJournal_Pass(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	s, err := journal.Open(path)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	if err := s.Add(journal.Entry{ContentHash: "h1", Date: "2026-08-23", Iteration: 1, NotePath: "x.md"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Close()

	r := CheckJournal(path)
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r.Detail != "journal.db (1 entries)" {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckJournal_Warn(t *testing.T) {
	r := CheckJournal(filepath.Join(t.TempDir(), "journal.db"))
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckEngine_Ollama(t *testing.T) {
	r := CheckEngine(config.EngineConfig{Provider: "ollama", Model: "llama3.2", BaseURL: "http://localhost:11434"})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckEngine_OpenAIWithKey(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-test-123")
	r := CheckEngine(config.EngineConfig{Provider: "openai", Model: "gpt-4o-mini", APIKeyEnv: "TEST_API_KEY"})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckEngine_OpenAINoKey(t *testing.T) {
	t.Setenv("TEST_API_KEY_MISSING", "")
	r := CheckEngine(config.EngineConfig{Provider: "openai", APIKeyEnv: "TEST_API_KEY_MISSING"})
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckEngine_None(t *testing.T) {
	r := CheckEngine(config.EngineConfig{Provider: "none"})
	if r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckEngine_Unknown(t *testing.T) {
	r := CheckEngine(config.EngineConfig{Provider: "whisper"})
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestReport_HasFailures_True(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Fail},
	}}
	if !r.HasFailures() {
		t.Error("expected HasFailures() == true")
	}
}

func TestReport_HasFailures_False(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Warn},
	}}
	if r.HasFailures() {
		t.Error("expected HasFailures() == false")
	}
}

func TestRun_Integration(t *testing.T) {
	vault := t.TempDir()

	// Create vault structure.
	os.Mkdir(filepath.Join(vault, ".obsidian"), 0o755)
	os.Mkdir(filepath.Join(vault, "Inbox"), 0o755)

	notesDir := filepath.Join(vault, "Notes")
	os.Mkdir(notesDir, 0o755)
	os.WriteFile(filepath.Join(notesDir, "note.md"), []byte("# Note"), 0o644)

	stateDir := filepath.Join(vault, ".voice-vault")
	os.Mkdir(stateDir, 0o755)

	cfg := config.DefaultConfig()
	cfg.VaultPath = vault

	report := Run(cfg)

	for _, res := range report.Results {
		if res.Status == Fail {
			t.Errorf("unexpected failure: %s, %s", res.Name, res.Detail)
		}
	}

	output := report.Format()
	if output == "" {
		t.Error("Format() returned empty string")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Pass, "pass"},
		{Warn, "warn"},
		{Fail, "FAIL"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
