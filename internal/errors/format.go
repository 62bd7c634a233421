package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold)
	errorMsg    = color.New(color.FgRed)
	fixLabel    = color.New(color.FgGreen, color.Bold)
	usageLabel  = color.New(color.FgCyan, color.Bold)
	usageText   = color.New(color.FgCyan)
	bullet      = color.New(color.FgGreen)
	categoryFmt = color.New(color.FgYellow)
)

// FormatError formats a CLIError for the terminal. Colors follow
// fatih/color's detection, so output is plain when stderr is not a TTY or
// NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(c *color.Color, s string) string {
		if !useColors {
			return s
		}
		return c.Sprint(s)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(errorLabel, "Error"), paint(categoryFmt, err.Category.String()), paint(errorMsg, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(usageLabel, "Usage: "), paint(usageText, err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixLabel, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(bullet, "•"), step)
		}
	}

	return sb.String()
}

// FprintError prints err to w. Errors that are not CLIErrors are shown as
// runtime errors.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	fmt.Fprint(w, FormatError(cliErr))
}
