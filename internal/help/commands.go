package help

import "strings"

// Version is the vj release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--git" or "--limit <n>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string // e.g. "path" or "transcript.txt"
	Desc     string
	Optional bool
}

// Command describes a vj subcommand (or the top-level binary when Name is "").
type Command struct {
	Name        string // "init", "watch", etc; "" for top-level
	Synopsis    string // one-line description (lowercase, for --help header)
	Brief       string // short description for usage table (capitalized)
	Usage       string // full usage line, e.g. "vj init [path] [--git]"
	TableUsage  string // shortened usage for the top-level table (if different from Usage)
	Args        []Arg
	Flags       []Flag
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	SeeAlso     []string // man page cross-refs, e.g. "vj(1)"
}

// tableUsage returns TableUsage if set, otherwise Usage.
func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// ManName returns the man page name: "vj" for top-level, "vj-<name>" for subs.
func (c Command) ManName() string {
	if c.Name == "" {
		return "vj"
	}
	return "vj-" + strings.ReplaceAll(c.Name, " ", "-")
}

// TopLevel is the top-level vj command (used by FormatUsage).
var TopLevel = Command{
	Name:     "",
	Synopsis: "voice-journal transcript processing",
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "create a new voice-journal vault",
	Brief:    "Create a new vault (default: ./voice-vault)",
	Usage:    "vj init [path] [--git]",
	Args: []Arg{
		{Name: "path", Desc: "Target directory (default: ./voice-vault)", Optional: true},
	},
	Flags: []Flag{
		{Name: "--git", Desc: "Initialize a git repository in the new vault"},
	},
	Description: `Creates the vault layout (Inbox/, Notes/, Archive/, .voice-vault/)
and a README. Also writes a default config to
~/.config/voice-vault/config.toml pointing at the new vault.`,
	Examples: []string{
		"vj init                       Create ./voice-vault",
		"vj init ~/journal/voice       Create at a specific path",
		"vj init --git                 Create with git repo initialized",
	},
	SeeAlso: []string{"vj(1)", "vj-watch(1)", "vj-check(1)"},
}

var CmdProcess = Command{
	Name:       "process",
	Synopsis:   "process a single transcript file",
	Brief:      "Process a single transcript file",
	Usage:      "vj process <transcript.txt>",
	TableUsage: "vj process <file.txt>",
	Args: []Arg{
		{Name: "transcript.txt", Desc: "Path to a transcript (.txt, .md, or .zst)"},
	},
	Description: `Loads the transcript, summarizes it through the configured engine,
extracts tasks and reminders, and writes a journal note to the vault.
Large transcripts are split into sentence-aligned chunks and the
per-chunk results merged. Skips trivial recordings and transcripts
whose content was already processed.`,
	Examples: []string{
		"vj process ~/Downloads/morning-entry.txt",
	},
	SeeAlso: []string{"vj(1)", "vj-scan(1)", "vj-watch(1)"},
}

var CmdScan = Command{
	Name:     "scan",
	Synopsis: "sweep the inbox for unprocessed transcripts",
	Brief:    "Process everything waiting in the inbox",
	Usage:    "vj scan [path]",
	Args: []Arg{
		{Name: "path", Desc: "Directory to scan (default: the vault inbox)", Optional: true},
	},
	Description: `Recursively discovers transcript files (.txt, .md, .zst) in the drop
directory, oldest first, and processes each through the full pipeline.
Already-processed and trivial transcripts are skipped, so the command
is safe to re-run.`,
	Examples: []string{
		"vj scan                   Sweep the configured inbox",
		"vj scan ~/Dropbox/voice   Sweep a specific directory",
	},
	SeeAlso: []string{"vj(1)", "vj-process(1)", "vj-watch(1)"},
}

var CmdWatch = Command{
	Name:     "watch",
	Synopsis: "watch the inbox and process drops as they arrive",
	Brief:    "Watch the inbox for new transcripts",
	Usage:    "vj watch",
	Description: `Runs an initial inbox sweep, then watches the drop directory for new
transcript files. Each file is processed once its writes settle
(debounce window, 500ms by default). Runs until interrupted.`,
	Examples: []string{
		"vj watch",
	},
	SeeAlso: []string{"vj(1)", "vj-scan(1)"},
}

var CmdJournal = Command{
	Name:       "journal",
	Synopsis:   "list recently processed entries",
	Brief:      "List recent journal entries",
	Usage:      "vj journal [--limit <n>]",
	TableUsage: "vj journal [--limit N]",
	Flags: []Flag{
		{Name: "--limit <n>", Desc: "Number of entries to show (default: 10)"},
	},
	Description: `Reads the journal index and prints the most recently processed
entries: date, iteration, content type, note path, and extracted
task/reminder counts.`,
	Examples: []string{
		"vj journal",
		"vj journal --limit 25",
	},
	SeeAlso: []string{"vj(1)", "vj-check(1)"},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "validate config, vault, and engine setup",
	Brief:    "Validate config, vault, and engine setup",
	Usage:    "vj check",
	Description: `Runs diagnostic checks and prints a pass/warn/FAIL report:
  - Config file location and validity
  - Vault directory exists
  - Obsidian config present (.obsidian/)
  - Inbox and Notes directories
  - State directory (.voice-vault/)
  - Journal database validity and entry count
  - Summarization engine configuration

Exit code 0 if all checks pass or warn, 1 if any check fails.`,
	SeeAlso: []string{"vj(1)", "vj-init(1)"},
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "vj version",
	SeeAlso:  []string{"vj(1)"},
}

// Subcommands is the ordered list of all subcommands.
var Subcommands = []Command{
	CmdInit,
	CmdProcess,
	CmdScan,
	CmdWatch,
	CmdJournal,
	CmdCheck,
	CmdVersion,
}
