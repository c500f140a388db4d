package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/suykerbuyk/voice-vault/internal/check"
	"github.com/suykerbuyk/voice-vault/internal/config"
	"github.com/suykerbuyk/voice-vault/internal/discover"
	"github.com/suykerbuyk/voice-vault/internal/help"
	"github.com/suykerbuyk/voice-vault/internal/journal"
	"github.com/suykerbuyk/voice-vault/internal/scaffold"
	"github.com/suykerbuyk/voice-vault/internal/session"
	"github.com/suykerbuyk/voice-vault/internal/watch"
)

const version = "0.1.0"

func main() {
	help.Version = version

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	// Per-command --help short-circuits before config loading, so help works
	// on a machine with no config yet.
	if wantsHelp(args) {
		for _, c := range help.Subcommands {
			if c.Name == cmd {
				fmt.Print(help.FormatTerminal(c))
				return
			}
		}
	}

	switch cmd {
	case "init":
		runInit(args)

	case "process":
		runProcess(args)

	case "scan":
		runScan(args)

	case "watch":
		runWatch()

	case "journal":
		runJournal(args)

	case "check":
		runCheck()

	case "version":
		fmt.Printf("vj v%s (voice-vault)\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func runInit(args []string) {
	target := "./voice-vault"
	var opts scaffold.Options
	for _, a := range args {
		switch {
		case a == "--git":
			opts.GitInit = true
		case strings.HasPrefix(a, "-"):
			fatal("unknown flag: %s", a)
		default:
			target = a
		}
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		fatal("resolve path: %v", err)
	}

	if err := scaffold.Init(abs, opts); err != nil {
		fatal("init: %v", err)
	}
	fmt.Printf("created vault at %s\n", config.CompressHome(abs))

	cfgPath, err := config.WriteDefault(abs)
	if err != nil {
		fatal("write config: %v", err)
	}
	fmt.Printf("config: %s\n", config.CompressHome(cfgPath))
	fmt.Printf("\nDrop transcripts into %s and run `vj scan` or `vj watch`.\n",
		config.CompressHome(filepath.Join(abs, "Inbox")))
}

func runProcess(args []string) {
	if len(args) < 1 {
		fatal("usage: vj process <transcript.txt>")
	}

	proc := newProcessor()
	defer proc.Close()

	printResult(context.Background(), proc, args[0])
}

func runScan(args []string) {
	cfg := loadConfig()

	dir := cfg.InboxDir()
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := discover.Scan(dir)
	if err != nil {
		fatal("scan %s: %v", dir, err)
	}
	if len(files) == 0 {
		fmt.Printf("nothing to process in %s\n", config.CompressHome(dir))
		return
	}

	proc, err := session.NewProcessor(cfg)
	if err != nil {
		fatal("%v", err)
	}
	defer proc.Close()

	var created, skipped, failed int
	for _, f := range files {
		result, err := proc.ProcessFile(context.Background(), f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vj: %s: %v\n", f.Name, err)
			failed++
			continue
		}
		if result.Skipped {
			fmt.Printf("skipped: %s (%s)\n", f.Name, result.Reason)
			skipped++
		} else {
			fmt.Printf("created: %s (%s)\n", result.NotePath, result.Title)
			created++
		}
	}

	fmt.Printf("\n%d created, %d skipped, %d failed\n", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runWatch() {
	cfg := loadConfig()

	proc, err := session.NewProcessor(cfg)
	if err != nil {
		fatal("%v", err)
	}
	defer proc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sweep once before watching so files dropped while vj was down are not
	// missed.
	if files, err := discover.Scan(cfg.InboxDir()); err == nil {
		for _, f := range files {
			printResult(ctx, proc, f.Path)
		}
	}

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	w, err := watch.New(cfg.InboxDir(), debounce, func(path string) {
		printResult(ctx, proc, path)
	})
	if err != nil {
		fatal("watch: %v", err)
	}
	if err := w.Start(ctx); err != nil {
		fatal("watch: %v", err)
	}
	defer w.Stop()

	fmt.Printf("watching %s (ctrl-c to stop)\n", config.CompressHome(cfg.InboxDir()))
	<-ctx.Done()
	fmt.Println("\nstopping")
}

func runJournal(args []string) {
	cfg := loadConfig()

	limit := 10
	if v := flagValue(args, "--limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fatal("invalid --limit value: %s", v)
		}
		limit = n
	}

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		fatal("open journal: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		fatal("read journal: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("no entries yet")
		return
	}

	for _, e := range entries {
		fmt.Printf("%s-%02d  %-16s  %dT/%dR  %s\n",
			e.Date, e.Iteration, e.ContentType, e.Tasks, e.Reminders, e.Title)
	}
}

func runCheck() {
	cfg := loadConfig()

	report := check.Run(cfg)
	fmt.Print(report.Format())
	if report.HasFailures() {
		os.Exit(1)
	}
}

// printResult runs one file through the processor and prints the outcome.
// Per-file errors are reported but never fatal in watch mode, so printResult
// only warns.
func printResult(ctx context.Context, proc *session.Processor, path string) {
	result, err := proc.ProcessFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vj: %s: %v\n", filepath.Base(path), err)
		return
	}
	if result.Skipped {
		fmt.Printf("skipped: %s (%s)\n", filepath.Base(path), result.Reason)
	} else {
		fmt.Printf("created: %s (%s)\n", result.NotePath, result.Title)
	}
}

func newProcessor() *session.Processor {
	proc, err := session.NewProcessor(loadConfig())
	if err != nil {
		fatal("%v", err)
	}
	return proc
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

func usage() {
	fmt.Fprint(os.Stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "vj: "+format+"\n", args...)
	os.Exit(1)
}
