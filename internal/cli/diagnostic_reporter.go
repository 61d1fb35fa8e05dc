package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stderr)
}

// NewDiagnosticReporterTo creates a diagnostic reporter writing to w
func NewDiagnosticReporterTo(verbose bool, w io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     w,
	}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var qwErr errors.QuickWrapError
	if stderrors.As(err, &qwErr) {
		r.reportQuickWrapError(qwErr, memberErrors(err))
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	r.printGeneralHelp()
	fmt.Fprintf(r.out, "\n")
}

// reportQuickWrapError reports an error with full context and suggestions
func (r *DiagnosticReporter) reportQuickWrapError(qwErr errors.QuickWrapError, problems []error) {
	r.printErrorHeader(qwErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", headline(qwErr))

	// Aggregated member errors are listed one by one
	if len(problems) > 0 {
		fmt.Fprintf(r.out, "Problems (%d):\n", len(problems))
		for _, problem := range problems {
			fmt.Fprintf(r.out, "   - %s\n", problem.Error())
		}
		fmt.Fprintf(r.out, "\n")
	} else if r.verbose && qwErr.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", qwErr.Unwrap().Error())
	}

	if context := qwErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := qwErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(qwErr.ErrorCode())

	if r.verbose {
		r.printErrorChain(qwErr)
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.UnresolvableTypeErrorCode:
		errorTypeStr = "Unresolvable Type Error"
	case errors.UnsupportedMemberErrorCode:
		errorTypeStr = "Unsupported Member Error"
	case errors.InvalidIdentifierErrorCode:
		errorTypeStr = "Invalid Identifier Error"
	case errors.ManifestErrorCode:
		errorTypeStr = "Manifest Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.TemplateErrorCode:
		errorTypeStr = "Template Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in key order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %s\n", formatContextKey(key), formatContextValue(context[key]))
	}

	fmt.Fprintf(r.out, "\n")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.UnresolvableTypeErrorCode:
		fmt.Fprintf(r.out, "Type Name Format:\n")
		fmt.Fprintf(r.out, "  - Use reflection full names such as Contoso.Messaging.Client\n")
		fmt.Fprintf(r.out, "  - Generic types carry an arity: System.Collections.Generic.List`1[System.String]\n")
		fmt.Fprintf(r.out, "  - Nested types use '+': Contoso.Outer+Inner\n\n")

	case errors.InvalidIdentifierErrorCode:
		fmt.Fprintf(r.out, "Identifier Rules:\n")
		fmt.Fprintf(r.out, "  - Names must start with a letter or '_'\n")
		fmt.Fprintf(r.out, "  - interface_prefix and service_suffix must keep derived names valid\n")
		fmt.Fprintf(r.out, "  - Reserved words are only allowed for members, where they are escaped with '@'\n\n")

	case errors.ManifestErrorCode:
		fmt.Fprintf(r.out, "Manifest Requirements:\n")
		fmt.Fprintf(r.out, "  - schemaVersion must be a v1.x semantic version\n")
		fmt.Fprintf(r.out, "  - Every type needs a name\n")
		fmt.Fprintf(r.out, "  - Unknown fields are rejected\n\n")
	}
}

// printGeneralHelp prints help shown for every error
func (r *DiagnosticReporter) printGeneralHelp() {
	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run 'quickwrap inspect' to see the surface model of a type\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
}

// printErrorChain prints the unwrapped error chain in verbose mode
func (r *DiagnosticReporter) printErrorChain(qwErr errors.QuickWrapError) {
	fmt.Fprintf(r.out, "Verbose Debug Information:\n")
	fmt.Fprintf(r.out, "  Error Code: %s (%d)\n", qwErr.ErrorCode(), int(qwErr.ErrorCode()))

	fmt.Fprintf(r.out, "  Error Chain:\n")
	level := 1
	for err := error(qwErr); err != nil; err = stderrors.Unwrap(err) {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		level++
	}

	fmt.Fprintf(r.out, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}

// headline returns the message of qwErr without its cause
func headline(qwErr errors.QuickWrapError) string {
	if base, ok := qwErr.(*errors.BaseError); ok {
		return base.Message
	}
	return qwErr.Error()
}

// memberErrors returns the members of the first aggregated error in the
// chain of err, if any
func memberErrors(err error) []error {
	for ; err != nil; err = stderrors.Unwrap(err) {
		if multi, ok := err.(interface{ WrappedErrors() []error }); ok {
			return multi.WrappedErrors()
		}
	}
	return nil
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func formatContextValue(value interface{}) string {
	if list, ok := value.([]string); ok {
		return strings.Join(list, ", ")
	}
	return fmt.Sprintf("%v", value)
}
