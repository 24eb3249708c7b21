// Package main provides the CLI entrypoint for tuicube.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuicube/internal/config"
	"github.com/verte-zerg/tuicube/internal/export"
	"github.com/verte-zerg/tuicube/internal/logging"
	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/scramble"
	"github.com/verte-zerg/tuicube/internal/stats"
	"github.com/verte-zerg/tuicube/internal/statsui"
	"github.com/verte-zerg/tuicube/internal/store"
	"github.com/verte-zerg/tuicube/internal/timer"
	"github.com/verte-zerg/tuicube/internal/tui"
)

const (
	defaultHoldMs         = int(timer.DefaultHoldDelay / time.Millisecond)
	defaultTickMs         = int(tui.DefaultTickInterval / time.Millisecond)
	defaultReleaseGapMs   = int(tui.DefaultReleaseGap / time.Millisecond)
	defaultRepeatDelayMs  = int(tui.DefaultRepeatDelay / time.Millisecond)
	defaultScrambleLength = scramble.DefaultLength
	maxScrambleLength     = 100
	defaultTheme          = "dark"
	defaultLogLevel       = "info"
	defaultCurveWindow    = 12
	defaultScrambleCount  = 1
)

var (
	timerHoldMs         int
	timerTickMs         int
	timerReleaseGapMs   int
	timerRepeatDelayMs  int
	timerScrambleLength int
	timerScrambleFile   string
	timerTheme          string
	timerNoRecord       bool
	timerLogLevel       string

	historySince       string
	historyLast        int
	historySession     string
	historyCurveWindow int
	historyPlain       bool

	exportFormat  string
	exportOut     string
	exportSince   string
	exportLast    int
	exportSession string

	scrambleCount  int
	scrambleLength int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuicube",
		Short:         "TUI speedcubing timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().IntVar(&timerHoldMs, "hold-ms", defaultHoldMs, "how long space must be held before the timer is ready (ms)")
	rootCmd.Flags().IntVar(&timerTickMs, "tick-ms", defaultTickMs, "display refresh interval while timing (ms)")
	rootCmd.Flags().IntVar(&timerReleaseGapMs, "release-gap-ms", defaultReleaseGapMs, "silence after the last key repeat that counts as release (ms)")
	rootCmd.Flags().IntVar(&timerRepeatDelayMs, "repeat-delay-ms", defaultRepeatDelayMs, "silence after a fresh key press that counts as release; keep above the terminal's key repeat delay (ms)")
	rootCmd.Flags().IntVar(&timerScrambleLength, "scramble-length", defaultScrambleLength, "moves per generated scramble")
	rootCmd.Flags().StringVar(&timerScrambleFile, "scramble-file", "", "file with one scramble per line, used in order")
	rootCmd.Flags().StringVar(&timerTheme, "theme", defaultTheme, "colour theme (dark, light)")
	rootCmd.Flags().BoolVar(&timerNoRecord, "no-record", false, "do not save solves to history")
	rootCmd.Flags().StringVar(&timerLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newScrambleCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	record := !timerNoRecord
	applyIntConfig(cmd, "hold-ms", &timerHoldMs, fileCfg.Timer.HoldMs)
	applyIntConfig(cmd, "tick-ms", &timerTickMs, fileCfg.Timer.TickMs)
	applyIntConfig(cmd, "release-gap-ms", &timerReleaseGapMs, fileCfg.Timer.ReleaseGapMs)
	applyIntConfig(cmd, "repeat-delay-ms", &timerRepeatDelayMs, fileCfg.Timer.RepeatDelayMs)
	applyIntConfig(cmd, "scramble-length", &timerScrambleLength, fileCfg.Timer.ScrambleLength)
	applyStringConfig(cmd, "scramble-file", &timerScrambleFile, fileCfg.Timer.ScrambleFile)
	applyStringConfig(cmd, "theme", &timerTheme, fileCfg.Timer.Theme)
	applyBoolConfig(cmd, "no-record", &record, fileCfg.Timer.Record)
	applyStringConfig(cmd, "log-level", &timerLogLevel, fileCfg.Timer.LogLevel)

	cfg := model.Config{
		HoldDelay:      time.Duration(timerHoldMs) * time.Millisecond,
		TickInterval:   time.Duration(timerTickMs) * time.Millisecond,
		ReleaseGap:     time.Duration(timerReleaseGapMs) * time.Millisecond,
		RepeatDelay:    time.Duration(timerRepeatDelayMs) * time.Millisecond,
		ScrambleLength: timerScrambleLength,
		ScrambleFile:   timerScrambleFile,
		Theme:          timerTheme,
		Record:         record,
		LogLevel:       timerLogLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	closeLog, err := initLogging(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := scrambleSource(cfg)
	if err != nil {
		return err
	}

	var log tui.SolveLog
	if cfg.Record {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		log = st
	}

	m, err := tui.NewModel(cfg, log, source)
	if err != nil {
		return err
	}
	logging.Info("timer started",
		"hold", cfg.HoldDelay,
		"release_gap", cfg.ReleaseGap,
		"repeat_delay", cfg.RepeatDelay,
		"record", cfg.Record,
		"scramble_file", cfg.ScrambleFile,
	)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func initLogging(levelName string) (func(), error) {
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	f, err := logging.InitFile(config.DefaultLogPath(), level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return func() {}, nil
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}, nil
}

func scrambleSource(cfg model.Config) (scramble.Source, error) {
	if cfg.ScrambleFile == "" {
		return scramble.NewRandomSource(scramble.New(), cfg.ScrambleLength), nil
	}
	list, err := scramble.LoadFile(cfg.ScrambleFile)
	if err != nil {
		return nil, err
	}
	logging.Info("scrambles loaded", "path", cfg.ScrambleFile, "count", len(list))
	return scramble.NewListSource(list), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse solve history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&historySession, "session", "", "only this session id")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "rolling mean window for curves")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain text report")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &historyCurveWindow, fileCfg.History.CurveWindow)
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)

	cfg, err := historyConfig(historySince, historyLast, historySession, historyCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	if historyPlain || !isTerminal(out) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return renderPlainHistory(out, report, cfg.CurveWindow)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func renderPlainHistory(w io.Writer, report stats.Report, window int) error {
	if err := stats.RenderSummary(w, report); err != nil {
		return err
	}
	if err := stats.RenderSessions(w, report); err != nil {
		return err
	}
	if err := stats.RenderTop(w, report.Solves); err != nil {
		return err
	}
	return stats.RenderCurves(w, report.Solves, window)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export solve history",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "output format (csv, jsonl, yaml, xlsx)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&exportSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&exportLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&exportSession, "session", "", "only this session id")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if exportOut == "" && export.Binary(format) {
		return fmt.Errorf("--out is required for %s", format)
	}
	cfg, err := historyConfig(exportSince, exportLast, exportSession, defaultCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	records := export.FromRows(report.Solves)

	if exportOut == "" {
		return export.Write(cmd.OutOrStdout(), format, records)
	}
	if err := writeExportFile(exportOut, format, records); err != nil {
		return err
	}
	logErrf("Wrote %d solves to %s\n", len(records), exportOut)
	return nil
}

func writeExportFile(path, format string, records []export.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := export.Write(writer, format, records); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func newScrambleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scramble",
		Short: "Print random scrambles",
		Args:  cobra.NoArgs,
		RunE:  runScrambleCmd,
	}
	cmd.Flags().IntVarP(&scrambleCount, "count", "n", defaultScrambleCount, "number of scrambles")
	cmd.Flags().IntVar(&scrambleLength, "length", defaultScrambleLength, "moves per scramble")
	return cmd
}

func runScrambleCmd(cmd *cobra.Command, _ []string) error {
	if scrambleCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if err := validateScrambleLength(scrambleLength); err != nil {
		return err
	}
	gen := scramble.New()
	for i := 0; i < scrambleCount; i++ {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), gen.Generate(scrambleLength)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func historyConfig(since string, last int, sessionID string, window int) (model.HistoryConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.HistoryConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.HistoryConfig{
		Since:       sinceTime,
		Last:        last,
		SessionID:   strings.TrimSpace(sessionID),
		CurveWindow: window,
	}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuicube configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# hold-ms = %d            # How long space must be held before ready (ms)
# tick-ms = %d             # Display refresh while timing (ms)
# release-gap-ms = %d     # Silence after the last key repeat that counts as release (ms)
# repeat-delay-ms = %d    # Silence after a fresh press that counts as release (ms)
# scramble-length = %d     # Moves per generated scramble
# scramble-file = ""        # One scramble per line, used in order
# theme = %q           # dark or light
# record = true             # Save solves to history
# log-level = %q       # debug, info, warn, error

[history]
# curve-window = %d        # Rolling mean window for curves
# last = 0                  # Limit to last N sessions (0 = all)
`,
		defaultHoldMs,
		defaultTickMs,
		defaultReleaseGapMs,
		defaultRepeatDelayMs,
		defaultScrambleLength,
		defaultTheme,
		defaultLogLevel,
		defaultCurveWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.HoldDelay <= 0 {
		return fmt.Errorf("--hold-ms must be > 0")
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	if cfg.ReleaseGap <= 0 {
		return fmt.Errorf("--release-gap-ms must be > 0")
	}
	if cfg.RepeatDelay < cfg.ReleaseGap {
		return fmt.Errorf("--repeat-delay-ms must be >= --release-gap-ms")
	}
	if err := validateScrambleLength(cfg.ScrambleLength); err != nil {
		return err
	}
	if _, err := tui.ParseTheme(cfg.Theme); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func validateScrambleLength(n int) error {
	if n < 1 || n > maxScrambleLength {
		return fmt.Errorf("--scramble-length must be between 1 and %d", maxScrambleLength)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
