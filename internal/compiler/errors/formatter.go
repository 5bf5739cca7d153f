package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *CompilerError) string {
	var b strings.Builder

	icon := severityIcon(e.Severity)
	categoryName := categoryDisplayName(e.Category)

	fmt.Fprintf(&b, "%s %s [%s]\n", icon, categoryName, e.Code)

	if e.Bean != "" {
		fmt.Fprintf(&b, "Bean: %s\n", e.Bean)
	}
	if e.Class != "" {
		fmt.Fprintf(&b, "Class: %s\n", e.Class)
	}
	if e.File != "" {
		fmt.Fprintf(&b, "File: %s\n", e.File)
	}

	fmt.Fprintf(&b, "  %s\n", e.Message)

	if len(e.Candidates) > 0 {
		b.WriteString("\nCandidates:\n")
		for _, c := range e.Candidates {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}

	if e.cause != nil {
		fmt.Fprintf(&b, "\nCaused by: %v\n", e.cause)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all errors
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder

	errCount, warnCount, infoCount := errors.ErrorCount()
	fmt.Fprintf(&b, "Generation failed with %d error(s), %d warning(s), %d info\n\n",
		errCount, warnCount, infoCount)

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format
func FormatCompact(e *CompilerError) string {
	var subject string
	switch {
	case e.Bean != "":
		subject = "bean '" + e.Bean + "': "
	case e.File != "":
		subject = e.File + ": "
	}
	msg := fmt.Sprintf("%s%s: %s [%s]", subject, e.Severity, e.Message, e.Code)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// severityIcon returns the emoji/icon for a severity level
func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️ "
	case SeverityInfo:
		return "ℹ️ "
	default:
		return "❓"
	}
}

// categoryDisplayName returns a human-readable category name
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryInput:
		return "Input Error"
	case CategoryCodeGen:
		return "Code Generation Error"
	case CategoryResolution:
		return "Resolution Error"
	case CategoryAccess:
		return "Access Error"
	default:
		return "Generator Error"
	}
}
