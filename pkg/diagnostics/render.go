package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/width"

	"gradus/pkg/source"
)

const (
	colorRed    = "\x1b[31m"
	colorBold   = "\x1b[1m"
	colorReset  = "\x1b[0m"
)

// ColorMode mirrors CheckerConfig.ColorDiagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// useColor decides whether w should receive ANSI color, honoring the
// configured mode; in auto mode only an *os.File that is a terminal does.
func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes one diagnostic in mypy-like "file:line:col: kind: msg"
// form, followed by the offending source line and a caret underneath
// it, to w.
func Render(w io.Writer, file *source.SourceFile, e GradusError, mode ColorMode) {
	pos := e.Pos()
	color := useColor(w, mode)

	head := fmt.Sprintf("%s:%d:%d: %s: %s", file.DisplayPath(), pos.Line, pos.Column, e.Kind(), e.Message())
	if color {
		fmt.Fprintf(w, "%s%s%s%s\n", colorBold, colorRed, head, colorReset)
	} else {
		fmt.Fprintln(w, head)
	}

	lines := file.Lines()
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}
	line := lines[pos.Line-1]
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, caretLine(line, pos.Column))
}

// caretLine builds the "   ^" line under the offending column, using
// golang.org/x/text/width to account for East-Asian wide and
// fullwidth runes so the caret lines up under multi-byte source.
func caretLine(line string, col int) string {
	var sb strings.Builder
	runes := []rune(line)
	n := col - 1
	if n > len(runes) {
		n = len(runes)
	}
	if n < 0 {
		n = 0
	}
	for _, r := range runes[:n] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		if runeDisplayWidth(r) == 2 {
			sb.WriteString("  ")
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}

func runeDisplayWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// RenderAll writes every diagnostic in sink, in position order.
func RenderAll(w io.Writer, file *source.SourceFile, s *Sink, mode ColorMode) {
	for _, e := range s.Diagnostics() {
		Render(w, file, e, mode)
	}
}
