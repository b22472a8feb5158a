package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/modelmeta/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to out
func NewDiagnosticReporter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Generation Failed\n")
	fmt.Fprintf(r.out, "========================\n\n")

	var coded errors.CodedError
	if stderrors.As(err, &coded) {
		r.reportCodedError(coded, err)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.out, "\n")
}

// reportCodedError reports a CodedError with full context and suggestions
func (r *DiagnosticReporter) reportCodedError(coded errors.CodedError, err error) {
	r.printErrorHeader(coded.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if len(coded.Context()) > 0 {
		r.printContext(coded.Context())
	}

	if len(coded.Suggestions()) > 0 {
		r.printSuggestions(coded.Suggestions())
	}

	// In verbose mode, show the chain of causes
	if r.verbose {
		r.printErrorChain(err)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n", err.Error())
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.ModuleNotFoundErrorCode:
		title = "Module Not Found"
	case errors.ModuleFormatErrorCode:
		title = "Invalid Module"
	case errors.TypeLoadErrorCode:
		title = "Type Load Error"
	case errors.RootNotFoundErrorCode:
		title = "Context Type Not Found"
	case errors.AmbiguousRootErrorCode:
		title = "Ambiguous Context Type"
	case errors.NoProjectErrorCode:
		title = "Project Not Found"
	case errors.AmbiguousProjectErrorCode:
		title = "Ambiguous Project"
	case errors.BuildErrorCode:
		title = "Build Error"
	case errors.GenerationErrorCode, errors.TemplateErrorCode:
		title = "Code Generation Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := context[key].(type) {
		case []string:
			fmt.Fprintf(r.out, "   %s:\n", r.formatContextKey(key))
			for _, item := range value {
				fmt.Fprintf(r.out, "      %s\n", item)
			}
		default:
			fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func (r *DiagnosticReporter) formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		// Format multi-line suggestions nicely
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

// printErrorChain prints every error of the unwrap chain
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "   %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
