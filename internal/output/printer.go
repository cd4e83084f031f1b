// Package output provides terminal formatting for the newsletter CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
)

// ColorsEnabled reports whether escape codes should be emitted. It
// honors the --no-color flag plus the conventional NO_COLOR and
// TERM=dumb escape hatches.
func ColorsEnabled(disabled bool) bool {
	if disabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Printer writes formatted status lines around the rendered content.
// Color is decided once at construction; digest bodies never pass
// through it, only the framing.
type Printer struct {
	out    io.Writer
	err    io.Writer
	colors bool
}

func NewPrinter(out, err io.Writer, colors bool) *Printer {
	return &Printer{out: out, err: err, colors: colors}
}

// Header prints a section title with an underline rule.
func (p *Printer) Header(title string) {
	width := utf8.RuneCountInString(title)
	if p.colors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		fmt.Fprintf(p.out, "%s\n", repeatRune('─', width))
	} else {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, repeatRune('-', width))
	}
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...interface{}) {
	if p.colors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

// Success prints a completion line.
func (p *Printer) Success(format string, args ...interface{}) {
	if p.colors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Print prints a plain line.
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Bold returns the text emphasized, or unchanged without colors.
func (p *Printer) Bold(text string) string {
	if p.colors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns the text de-emphasized, or unchanged without colors.
func (p *Printer) Dim(text string) string {
	if p.colors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

func repeatRune(r rune, count int) string {
	out := make([]rune, count)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
