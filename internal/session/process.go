// Package session wires the full processing flow for one dropped transcript:
// load, dedupe against the journal, redact, summarize, render the note, file
// the archive copy, and record the journal entry.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/suykerbuyk/voice-vault/internal/archive"
	"github.com/suykerbuyk/voice-vault/internal/cache"
	"github.com/suykerbuyk/voice-vault/internal/config"
	"github.com/suykerbuyk/voice-vault/internal/engine"
	"github.com/suykerbuyk/voice-vault/internal/journal"
	"github.com/suykerbuyk/voice-vault/internal/pipeline"
	"github.com/suykerbuyk/voice-vault/internal/render"
	"github.com/suykerbuyk/voice-vault/internal/sanitize"
	"github.com/suykerbuyk/voice-vault/internal/transcript"
)

// Result holds the output of processing one transcript.
type Result struct {
	NotePath    string // relative to the notes directory
	Date        string
	Iteration   int
	Title       string
	ContentType string
	Tasks       int
	Reminders   int
	Skipped     bool
	Reason      string
}

// Processor holds the long-lived pieces of the processing flow so watch mode
// reuses one engine, cache, and journal across drops.
type Processor struct {
	cfg     config.Config
	engine  engine.Engine
	journal *journal.Store
	pipe    *pipeline.Pipeline
}

// NewProcessor builds a Processor from config: engine from the configured
// provider, journal at the vault state dir, and a bounded result cache.
func NewProcessor(cfg config.Config) (*Processor, error) {
	eng := engine.New(cfg.Engine)

	store, err := cache.New(cfg.Cache.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	jrnl, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	pipe := pipeline.New(eng, pipeline.Options{
		TokenBudget:   cfg.Chunking.TokenBudget,
		MaxChunkWords: cfg.Chunking.MaxChunkWords,
		MaxRetries:    cfg.Engine.MaxRetries,
		Cache:         store,
	})

	return &Processor{cfg: cfg, engine: eng, journal: jrnl, pipe: pipe}, nil
}

// Close releases the journal database.
func (p *Processor) Close() error {
	return p.journal.Close()
}

// Journal exposes the underlying journal store for listing commands.
func (p *Processor) Journal() *journal.Store {
	return p.journal
}

// ProcessFile runs the full flow for one transcript file.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	t, err := transcript.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	if t.IsTrivial() {
		return &Result{Skipped: true, Reason: "trivial transcript"}, nil
	}

	hash := ContentHash(t.Text)

	seen, err := p.journal.Has(hash)
	if err != nil {
		return nil, fmt.Errorf("check journal: %w", err)
	}
	if seen {
		return &Result{Skipped: true, Reason: "already processed"}, nil
	}

	// Redact PII before the text leaves the machine. Local engines see the
	// raw transcript.
	text := t.Text
	redacted := false
	if p.cfg.Privacy.Redact && p.cfg.Engine.Provider == "openai" {
		clean := sanitize.Redact(sanitize.StripTags(text))
		redacted = clean != text
		text = clean
	}

	result, err := p.pipe.Process(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("process transcript: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	iteration, err := p.journal.NextIteration(date)
	if err != nil {
		return nil, fmt.Errorf("next iteration: %w", err)
	}

	title := render.TitleFromSummary(result.Summary)
	noteData := render.NoteData{
		Date:        date,
		Iteration:   iteration,
		Title:       title,
		Summary:     result.Summary,
		ContentType: result.ContentType,
		SourceFile:  filepath.Base(path),
		Words:       t.Stats.Words,
		DurationMin: int(t.Stats.EstDuration.Minutes()),
		Engine:      p.engine.Name(),
		Redacted:    redacted,
		Tasks:       result.Tasks,
		Reminders:   result.Reminders,
	}

	relPath := render.NoteRelPath(date, iteration)
	absPath := filepath.Join(p.cfg.NotesDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(render.JournalNote(noteData)), 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}

	if p.cfg.Archive.Compress {
		if _, err := archive.Archive(path, p.cfg.ArchiveDir(), hash); err != nil {
			log.Printf("warning: archive failed: %v", err)
		}
	}

	err = p.journal.Add(journal.Entry{
		ContentHash: hash,
		Date:        date,
		Iteration:   iteration,
		NotePath:    relPath,
		Title:       title,
		ContentType: string(result.ContentType),
		Engine:      p.engine.Name(),
		Words:       t.Stats.Words,
		Tasks:       len(result.Tasks),
		Reminders:   len(result.Reminders),
	})
	if err != nil {
		log.Printf("warning: could not record journal entry: %v", err)
	}

	return &Result{
		NotePath:    relPath,
		Date:        date,
		Iteration:   iteration,
		Title:       title,
		ContentType: string(result.ContentType),
		Tasks:       len(result.Tasks),
		Reminders:   len(result.Reminders),
	}, nil
}

// ContentHash identifies a transcript by its normalized text, so the same
// recording dropped under a different filename still dedupes.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
