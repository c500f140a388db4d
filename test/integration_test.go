package test

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

// vjBinary is the path to the compiled vj binary, set by TestMain.
var vjBinary string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	tmpDir, err := os.MkdirTemp("", "vj-integration-build-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	vjBinary = filepath.Join(tmpDir, "vj")
	cmd := exec.Command("go", "build", "-o", vjBinary, "./cmd/vj")
	// Test working dir is test/, so go up one level to project root
	cmd.Dir = filepath.Join("..")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build vj binary: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// --- Fixtures ---

// fixtureErrands: everyday journal entry with enough words to clear the
// trivial-transcript filter.
const fixtureErrands = `Busy morning today. I dropped the car off at the garage for the brake
inspection and walked back through the park. I still need to call the
insurance company about the renewal before Friday. Groceries are done,
but I forgot to pick up coffee filters again.`

// fixtureMeeting: meeting-flavored entry, distinct content from errands.
const fixtureMeeting = `Quick debrief after the quarterly planning meeting. The agenda covered
the launch schedule and everyone agreed on the action items. I need to
send the follow-up notes to the attendees and book the next sync for
Thursday.`

// fixtureProjectLog: technical entry used for the scan sweep.
const fixtureProjectLog = `Spent the evening debugging the deployment pipeline. The server config
had a stale environment variable and the database migration script
failed twice before I spotted the typo. Everything is green now.`

// fixtureTrivial: a mic check, filtered before the engine is called.
const fixtureTrivial = `Testing one two three.`

// fakeEngineResult is what the stub Ollama server returns for every chat
// completion. The binary parses this through the real result pipeline.
var fakeEngineResult = map[string]any{
	"summary":      "Handled the morning errands and planned the rest of the week.",
	"content_type": "general",
	"tasks": []map[string]any{
		{"text": "Call the insurance company about the renewal", "priority": "high",
			"category": "call", "time_reference": "before Friday", "confidence": 0.9},
		{"text": "Pick up coffee filters", "priority": "low",
			"category": "purchase", "time_reference": "", "confidence": 0.7},
	},
	"reminders": []map[string]any{
		{"text": "Collect the car from the garage", "time_reference": "this afternoon",
			"urgency": "today", "confidence": 0.8},
	},
}

// startFakeOllama serves the subset of the Ollama chat API the engine uses.
func startFakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	content, err := json.Marshal(fakeEngineResult)
	if err != nil {
		t.Fatalf("marshal fake result: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := map[string]any{
			"message": map[string]string{"role": "assistant", "content": string(content)},
			"done":    true,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// --- Helpers ---

func runVJ(t *testing.T, env []string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := exec.Command(vjBinary, args...)
	cmd.Env = env
	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func mustRunVJ(t *testing.T, env []string, args ...string) string {
	t.Helper()
	stdout, stderr, err := runVJ(t, env, args...)
	if err != nil {
		t.Fatalf("vj %s failed: %v\nstdout: %s\nstderr: %s", strings.Join(args, " "), err, stdout, stderr)
	}
	return stdout
}

func writeFixture(t *testing.T, dir, filename, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

func writeCompressedFixture(t *testing.T, dir, filename, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := enc.Write([]byte(content)); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close zstd writer: %v", err)
	}
	return path
}

func buildEnv(xdgConfigHome string) []string {
	return []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
		"XDG_CONFIG_HOME=" + xdgConfigHome,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: expected %q to contain %q", msg, s, substr)
	}
}

func assertNotContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("%s: expected %q to NOT contain %q", msg, s, substr)
	}
}

// writeTestConfig points the binary at the vault and the stub engine.
func writeTestConfig(t *testing.T, xdgConfigHome, vaultPath, engineURL string) {
	t.Helper()
	cfgDir := filepath.Join(xdgConfigHome, "voice-vault")
	content := fmt.Sprintf(`vault_path = %q

[engine]
provider = "ollama"
model = "test-model"
base_url = %q
temperature = 0.0
timeout_seconds = 10
max_retries = 1

[chunking]
token_budget = 3000
max_chunk_words = 2000

[cache]
max_entries = 16

[privacy]
redact = true

[archive]
compress = true

[watch]
debounce_ms = 100
`, vaultPath, engineURL)
	writeFixture(t, cfgDir, "config.toml", content)
}

// --- Integration Test ---

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	vaultPath := filepath.Join(t.TempDir(), "vault")
	xdgConfigHome := t.TempDir()
	fixtureDir := t.TempDir()

	env := buildEnv(xdgConfigHome)
	srv := startFakeOllama(t)

	date := time.Now().Format("2006-01-02")
	year := date[:4]
	notesDir := filepath.Join(vaultPath, "Notes", year)

	errandsPath := writeFixture(t, fixtureDir, "errands.txt", fixtureErrands)
	trivialPath := writeFixture(t, fixtureDir, "mic-check.txt", fixtureTrivial)

	// 1. init
	t.Run("init", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "init", vaultPath)

		for _, rel := range []string{"Inbox", "Notes", "Archive", ".voice-vault"} {
			if !dirExists(filepath.Join(vaultPath, rel)) {
				t.Errorf("%s/ not created", rel)
			}
		}
		if !fileExists(filepath.Join(vaultPath, "README.md")) {
			t.Error("README.md not created")
		}
		if !fileExists(filepath.Join(vaultPath, ".gitignore")) {
			t.Error(".gitignore not created")
		}

		cfgPath := filepath.Join(xdgConfigHome, "voice-vault", "config.toml")
		if !fileExists(cfgPath) {
			t.Fatal("config.toml not created")
		}
		assertContains(t, readFile(t, cfgPath), "vault_path", "config content")

		assertContains(t, stdout, "created vault at", "init stdout")
		assertContains(t, stdout, "config:", "init config message")

		// Re-init of the same directory is refused.
		_, stderr, err := runVJ(t, env, "init", vaultPath)
		if err == nil {
			t.Error("re-init of an existing vault should fail")
		}
		assertContains(t, stderr, "already contains .voice-vault/", "re-init stderr")
	})

	// Swap the default config for one pointing at the stub engine.
	writeTestConfig(t, xdgConfigHome, vaultPath, srv.URL)

	// 2. process one transcript
	t.Run("process", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "process", errandsPath)
		assertContains(t, stdout, "created:", "process stdout")

		notePath := filepath.Join(notesDir, date+"-01.md")
		if !fileExists(notePath) {
			t.Fatalf("note not created at %s", notePath)
		}

		note := readFile(t, notePath)
		assertContains(t, note, "date: "+date, "frontmatter date")
		assertContains(t, note, "type: voice-journal", "frontmatter type")
		assertContains(t, note, "iteration: 1", "frontmatter iteration")
		assertContains(t, note, "content_type: general", "frontmatter content type")
		assertContains(t, note, "source: errands.txt", "frontmatter source")
		assertContains(t, note, "# Handled the morning errands and planned the rest of the week", "note title")
		assertContains(t, note, "## Tasks", "tasks section")
		assertContains(t, note, "- [ ] **high** Call the insurance company about the renewal", "high-priority task")
		assertContains(t, note, "## Reminders", "reminders section")
		assertContains(t, note, "Collect the car from the garage", "reminder text")
		assertContains(t, note, "summarized by ollama/test-model", "engine footer")

		if !fileExists(filepath.Join(vaultPath, ".voice-vault", "journal.db")) {
			t.Error("journal.db not created")
		}
	})

	// 3. duplicate content is skipped, even under another filename
	t.Run("duplicate_content_skipped", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "process", errandsPath)
		assertContains(t, stdout, "skipped:", "re-process stdout")
		assertContains(t, stdout, "already processed", "re-process reason")

		renamed := writeFixture(t, fixtureDir, "errands-copy.txt", fixtureErrands)
		stdout = mustRunVJ(t, env, "process", renamed)
		assertContains(t, stdout, "already processed", "renamed duplicate reason")

		if fileExists(filepath.Join(notesDir, date+"-02.md")) {
			t.Error("duplicate processing created a second note")
		}
	})

	// 4. trivial transcripts are skipped before the engine
	t.Run("trivial_skipped", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "process", trivialPath)
		assertContains(t, stdout, "skipped:", "trivial stdout")
		assertContains(t, stdout, "trivial transcript", "trivial reason")
	})

	// 5. scan sweeps the inbox, including compressed drops
	t.Run("scan", func(t *testing.T) {
		inbox := filepath.Join(vaultPath, "Inbox")
		writeFixture(t, inbox, "meeting.txt", fixtureMeeting)
		writeCompressedFixture(t, inbox, "project-log.txt.zst", fixtureProjectLog)

		stdout := mustRunVJ(t, env, "scan")
		assertContains(t, stdout, "2 created, 0 skipped, 0 failed", "scan summary")

		if !fileExists(filepath.Join(notesDir, date+"-02.md")) {
			t.Error("second note not created by scan")
		}
		if !fileExists(filepath.Join(notesDir, date+"-03.md")) {
			t.Error("third note not created by scan")
		}

		// Re-scan finds the same content and skips everything.
		stdout = mustRunVJ(t, env, "scan")
		assertContains(t, stdout, "0 created, 2 skipped, 0 failed", "re-scan summary")
	})

	// 6. archive copies exist for processed transcripts
	t.Run("archive", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(vaultPath, "Archive"))
		if err != nil {
			t.Fatalf("read archive dir: %v", err)
		}
		var zstFiles int
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".txt.zst") {
				info, _ := e.Info()
				if info.Size() > 0 {
					zstFiles++
				}
			}
		}
		if zstFiles == 0 {
			t.Error("no non-empty .txt.zst files in Archive/")
		}
	})

	// 7. journal lists recent entries
	t.Run("journal", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "journal")
		assertContains(t, stdout, date+"-01", "first entry listed")
		assertContains(t, stdout, date+"-03", "latest entry listed")
		assertContains(t, stdout, "general", "content type listed")
		assertContains(t, stdout, "2T/1R", "task and reminder counts")

		limited := mustRunVJ(t, env, "journal", "--limit", "1")
		if n := strings.Count(strings.TrimSpace(limited), "\n"); n != 0 {
			t.Errorf("journal --limit 1 printed %d lines, want 1:\n%s", n+1, limited)
		}
		assertNotContains(t, limited, date+"-01", "oldest entry excluded by limit")
	})

	// 8. check passes against the populated vault
	t.Run("check", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "check")
		assertContains(t, stdout, "vj check", "check header")
		assertContains(t, stdout, "ollama/test-model", "engine detail")
		assertContains(t, stdout, "journal.db (3 entries)", "journal detail")
		assertContains(t, stdout, "0 failure", "no failures")
	})

	// 9. version and help
	t.Run("version_and_help", func(t *testing.T) {
		stdout := mustRunVJ(t, env, "version")
		assertContains(t, stdout, "vj v", "version stdout")

		_, stderr, err := runVJ(t, env, "help")
		if err != nil {
			t.Fatalf("vj help failed: %v", err)
		}
		assertContains(t, stderr, "Usage:", "help output")
		assertContains(t, stderr, "vj scan", "help lists scan")

		helpOut, _, err := runVJ(t, env, "process", "--help")
		if err != nil {
			t.Fatalf("vj process --help failed: %v", err)
		}
		assertContains(t, helpOut, "vj process", "per-command help")
	})
}
