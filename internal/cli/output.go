package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// DefaultTerminalWidth is used when the width of w cannot be determined.
const DefaultTerminalWidth = 80

// TerminalWidth returns the column count of w, or DefaultTerminalWidth
// when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultTerminalWidth
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Cyan returns s wrapped in cyan ANSI codes if colors are enabled.
func Cyan(s string) string { return paint(colorCyan, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold returns s in bold if colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// DefaultMaxTitleWidth is the default maximum visible width for title columns.
const DefaultMaxTitleWidth = 40

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	// Expand colWidths if needed
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}

	// Update column widths based on visible width (excluding ANSI codes)
	for i, col := range cols {
		width := visibleWidth(col)
		// Cap the tracked width if a max is set for this column
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}

	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var parts []string
		for i, col := range row {
			// Truncate if a max width is set for this column
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(t.colWidths)-1 {
				parts = append(parts, padRight(col, t.colWidths[i]))
			} else {
				parts = append(parts, col)
			}
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// Truncate returns s truncated to maxWidth visible characters. If s exceeds
// maxWidth, it is cut and "..." is appended (counted within the limit).
// ANSI escape codes are preserved up to the truncation point with a reset appended.
// Below a width of 3 the text is hard-cut with no ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	if maxWidth < len(ellipsis) {
		cut, _ := cutVisible(s, maxWidth)
		return cut
	}

	cut, hasAnsi := cutVisible(s, maxWidth-len(ellipsis))
	cut += ellipsis
	if hasAnsi {
		cut += colorReset
	}
	return cut
}

// cutVisible keeps the first n visible runes of s along with any escape
// sequences before them, and reports whether s contained escapes.
func cutVisible(s string, n int) (string, bool) {
	var result strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			hasAnsi = true
			result.WriteRune(r)
			continue
		}
		if inEscape {
			result.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if visible >= n {
			break
		}
		result.WriteRune(r)
		visible++
	}
	return result.String(), hasAnsi
}

// padRight pads s with spaces to width visible characters.
func padRight(s string, width int) string {
	if pad := width - visibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}

	return width
}

// Card is one boxed block of a grid: a title line above body lines.
type Card struct {
	Title string
	Lines []string
}

// MinCardWidth is the narrowest card RenderGrid will draw.
const MinCardWidth = 16

// GridColumns returns how many cards of cardWidth fit in a terminal of
// termWidth columns, at least one.
func GridColumns(termWidth, cardWidth int) int {
	if cardWidth < MinCardWidth {
		cardWidth = MinCardWidth
	}
	cols := (termWidth + 2) / (cardWidth + 2)
	if cols < 1 {
		return 1
	}
	return cols
}

// RenderGrid draws cards as boxes, cols per row and width visible
// characters wide. Cards in a row share the height of the tallest one.
func RenderGrid(w io.Writer, cards []Card, cols, width int) {
	if cols < 1 {
		cols = 1
	}
	if width < MinCardWidth {
		width = MinCardWidth
	}

	for start := 0; start < len(cards); start += cols {
		row := cards[start:min(start+cols, len(cards))]

		height := 0
		for _, c := range row {
			height = max(height, len(c.Lines))
		}

		boxes := make([][]string, len(row))
		for i, c := range row {
			boxes[i] = c.box(width, height)
		}

		if start > 0 {
			fmt.Fprintln(w)
		}
		for line := range boxes[0] {
			parts := make([]string, len(boxes))
			for i := range boxes {
				parts[i] = boxes[i][line]
			}
			fmt.Fprintln(w, strings.Join(parts, "  "))
		}
	}
}

// box renders c with height body lines inside a frame width characters wide.
func (c Card) box(width, height int) []string {
	inner := width - 4
	edge := strings.Repeat("─", width-2)

	out := make([]string, 0, height+3)
	out = append(out, "┌"+edge+"┐")
	out = append(out, "│ "+padRight(Truncate(c.Title, inner), inner)+" │")
	for i := 0; i < height; i++ {
		var l string
		if i < len(c.Lines) {
			l = c.Lines[i]
		}
		out = append(out, "│ "+padRight(Truncate(l, inner), inner)+" │")
	}
	out = append(out, "└"+edge+"┘")
	return out
}
