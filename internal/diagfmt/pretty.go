// Package diagfmt renders a diag.Bag as human-readable text: a
// file:line:col header per diagnostic, colorized by severity, followed by
// a source-line snippet with a caret/tilde underline under the offending
// span.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"langcore/internal/diag"
	"langcore/internal/source"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Options controls Pretty's output.
type Options struct {
	Color     bool // colorize severity labels and the underline
	Context   int  // lines of surrounding context per side (min 1)
	ShowNotes bool
}

// DefaultOptions returns the options Pretty uses when none are given.
func DefaultOptions() Options {
	return Options{Color: true, Context: 1, ShowNotes: true}
}

// visualWidthUpTo computes the rendered column width of s up to the given
// 1-based byte column, expanding tabs and accounting for wide runes (e.g.
// East Asian characters occupy two terminal columns) so the underline
// lines up under multi-byte source text.
func visualWidthUpTo(s string, byteCol uint32, tabWidth int) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

// Pretty writes every diagnostic in bag to w. Callers should call
// bag.Sort() first for deterministic, file-ordered output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	var (
		errorColor     = color.New(color.FgRed, color.Bold)
		warningColor   = color.New(color.FgYellow, color.Bold)
		infoColor      = color.New(color.FgCyan, color.Bold)
		pathColor      = color.New(color.FgWhite, color.Bold)
		codeColor      = color.New(color.FgMagenta)
		lineNumColor   = color.New(color.FgBlue)
		underlineColor = color.New(color.FgRed, color.Bold)
	)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context <= 0 {
		context = 1
	}
	const tabWidth = 8

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}

		start, end := d.Primary.Start, d.Primary.End()
		f := fs.File(start.File)
		path := "<unknown>"
		if f != nil {
			path = f.Path
		}

		var sevColored string
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(d.Severity.String())
		case diag.SevWarning:
			sevColored = warningColor.Sprint(d.Severity.String())
		default:
			sevColored = infoColor.Sprint(d.Severity.String())
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathColor.Sprint(path), start.Line, start.Column,
			sevColored, codeColor.Sprint(d.Code.ID()), d.Message)

		if f == nil {
			continue
		}

		startLine := start.Line
		if startLine > uint32(context) {
			startLine -= uint32(context)
		} else {
			startLine = 1
		}
		endLine := end.Line + uint32(context)

		if startLine > 1 {
			fmt.Fprintln(w, "...")
		}

		lineNumWidth := len(fmt.Sprintf("%d", endLine))
		if lineNumWidth < 3 {
			lineNumWidth = 3
		}

		for line := startLine; line <= endLine; line++ {
			text := fs.LineText(start.File, line)
			gutter := fmt.Sprintf("%*d | ", lineNumWidth, line)
			gutterLen := lineNumWidth + 3
			fmt.Fprintf(w, "%s%s\n", lineNumColor.Sprint(gutter), text)

			if line == start.Line {
				startCol := start.Column
				endCol := end.Column
				if end.Line > start.Line {
					endCol = uint32(len(text)) + 1
				}
				visualStart := visualWidthUpTo(text, startCol, tabWidth)
				visualEnd := visualWidthUpTo(text, endCol, tabWidth)

				var u strings.Builder
				for range gutterLen {
					u.WriteByte(' ')
				}
				for range visualStart {
					u.WriteByte(' ')
				}
				spanLen := visualEnd - visualStart
				if spanLen <= 0 {
					u.WriteByte('^')
				} else {
					for i := 0; i < spanLen; i++ {
						if i == spanLen-1 {
							u.WriteByte('^')
						} else {
							u.WriteByte('~')
						}
					}
				}
				fmt.Fprintln(w, underlineColor.Sprint(u.String()))
			}
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				noteFile := fs.File(note.Span.Start.File)
				notePath := path
				if noteFile != nil {
					notePath = noteFile.Path
				}
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
					infoColor.Sprint("note"), pathColor.Sprint(notePath),
					note.Span.Start.Line, note.Span.Start.Column, note.Msg)
			}
		}
	}
}
