package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Grid is the character buffer behind the watch panel. Coordinates are
// panel coordinates: row 0, column 0 and the last row and column belong
// to the border, so only the interior is stored and writes onto the
// border are dropped.
type Grid struct {
	width  int
	height int
	cells  [][]rune
}

// NewGrid allocates a blank grid for a panel of width×height cells,
// border included.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  maxInt(width-2, 0),
		height: maxInt(height-2, 0),
	}
	g.cells = make([][]rune, g.height)
	for i := range g.cells {
		g.cells[i] = make([]rune, g.width)
	}
	g.Clear()
	return g
}

// Clear blanks the interior.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = ' '
		}
	}
}

// WriteAt copies text into the grid starting at the given panel cell.
// Cells are terminal columns: a double-width rune takes two, and one that
// would straddle the right edge is dropped along with the rest of the
// text. Newlines are not interpreted; they are drawn as spaces.
func (g *Grid) WriteAt(row, col int, text string) {
	r := row - 1
	if r < 0 || r >= g.height {
		return
	}
	c := col - 1
	for _, ch := range text {
		if ch == '\n' || ch == '\t' || ch == '\r' {
			ch = ' '
		}
		w := ansi.StringWidth(string(ch))
		if w == 0 {
			continue
		}
		if c+w > g.width {
			return
		}
		if c >= 0 {
			g.put(r, c, ch)
			if w == 2 {
				g.put(r, c+1, wideTail)
			}
		}
		c += w
	}
}

// wideTail fills the column covered by the right half of a wide rune.
const wideTail rune = 0

// put stores ch at (r, c), blanking any wide rune it splits.
func (g *Grid) put(r, c int, ch rune) {
	cells := g.cells[r]
	if cells[c] == wideTail && c > 0 && ch != wideTail {
		cells[c-1] = ' '
	}
	if c+1 < len(cells) && cells[c+1] == wideTail && cells[c] != wideTail {
		cells[c+1] = ' '
	}
	cells[c] = ch
}

// Lines returns a snapshot of the interior, one string per row. Each
// line is exactly the interior width in terminal columns.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	for i, row := range g.cells {
		var b strings.Builder
		for _, ch := range row {
			if ch != wideTail {
				b.WriteRune(ch)
			}
		}
		lines[i] = b.String()
	}
	return lines
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
