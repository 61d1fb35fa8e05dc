package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	// DiagnosticError prints nothing itself; failures are reported once by
	// the caller when the run ends
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem writes progress, warnings and summaries of a run
type DiagnosticSystem struct {
	level     DiagnosticLevel
	out       io.Writer
	useColors bool
	stamp     bool
	indent    int
}

// NewDiagnostics creates a diagnostic system writing to w. Colors and
// timestamps are only used when w is the process's terminal.
func NewDiagnostics(level DiagnosticLevel, w io.Writer) *DiagnosticSystem {
	terminal := w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr)
	colors := terminal && shouldUseColors()
	return &DiagnosticSystem{
		level:     level,
		out:       w,
		useColors: colors,
		stamp:     colors && level >= DiagnosticVerbose,
	}
}

// Warn reports a problem that does not stop the run
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.tagged(DiagnosticWarn, "WARN", color.FgYellow, format, args...)
}

// Info reports a step of a long-running command such as serve
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.tagged(DiagnosticInfo, "INFO", color.FgBlue, format, args...)
}

// Success reports the outcome of a command
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.tagged(DiagnosticInfo, "SUCCESS", color.FgGreen, format, args...)
}

// Verbose reports inputs and timings
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.tagged(DiagnosticVerbose, "VERBOSE", color.FgHiBlack, format, args...)
}

// Debug reports per-file detail
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.tagged(DiagnosticDebug, "DEBUG", color.FgMagenta, format, args...)
}

// Header prints the banner of a command
func (d *DiagnosticSystem) Header(message string) {
	d.line(DiagnosticInfo, d.paint(color.FgCyan, "QuickWrap: "+message))
}

// Section starts a group of PhaseItems
func (d *DiagnosticSystem) Section(title string) {
	d.line(DiagnosticInfo, d.indentation()+d.paint(color.FgCyan, title))
}

// PhaseItem reports one completed unit of work, usually one wrapped type
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	d.line(DiagnosticInfo, d.indentation()+d.paint(color.FgGreen, "✓")+" "+fmt.Sprintf(format, args...))
}

// Indent nests following output one level deeper
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent undoes one Indent
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary prints the statistics of a run in key order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(d.out, "\n%s\n", d.paint(color.FgGreen, title))
	for _, key := range keys {
		fmt.Fprintf(d.out, "   %s: %v\n", key, stats[key])
	}
}

func (d *DiagnosticSystem) tagged(level DiagnosticLevel, tag string, attr color.Attribute, format string, args ...interface{}) {
	var b strings.Builder
	b.WriteString(d.indentation())
	if d.stamp {
		b.WriteString(time.Now().Format("15:04:05 "))
	}
	b.WriteString(d.paint(attr, "["+tag+"]"))
	b.WriteString(" ")
	fmt.Fprintf(&b, format, args...)
	d.line(level, b.String())
}

func (d *DiagnosticSystem) line(level DiagnosticLevel, text string) {
	if d.level >= level {
		fmt.Fprintln(d.out, text)
	}
}

func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func (d *DiagnosticSystem) indentation() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors honors FORCE_COLOR, then the terminal and NO_COLOR
// detection of the color package
func shouldUseColors() bool {
	if os.Getenv("FORCE_COLOR") != "" && os.Getenv("NO_COLOR") == "" {
		return true
	}
	return !color.NoColor
}

// ParseDiagnosticLevel maps --verbose and --quiet to a level
func ParseDiagnosticLevel(verbose, quiet bool) DiagnosticLevel {
	switch {
	case quiet:
		return DiagnosticError
	case verbose:
		return DiagnosticVerbose
	default:
		return DiagnosticInfo
	}
}
