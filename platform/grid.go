//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package platform

import (
	"strings"

	quill "github.com/timburks/quill/types"
)

// Nominal cell size used to turn window pixels into grid cells.
const (
	CellWidth  = 8
	CellHeight = 16
)

// A TextGrid is an in-memory Surface. Backends without a cell-based display
// keep the view's output here.
type TextGrid struct {
	cols, rows int
	cells      []rune
	styles     []quill.Style
	cursorX    int
	cursorY    int
	flushes    int
}

var _ quill.Surface = (*TextGrid)(nil)

func NewTextGrid(cols, rows int) *TextGrid {
	g := &TextGrid{}
	g.Resize(cols, rows)
	return g
}

// GridForWindow sizes a grid to fit a window of the given pixel dimensions.
func GridForWindow(width, height int) *TextGrid {
	return NewTextGrid(max(width/CellWidth, 1), max(height/CellHeight, 1))
}

func (g *TextGrid) Resize(cols, rows int) {
	g.cols, g.rows = cols, rows
	g.cells = make([]rune, cols*rows)
	g.styles = make([]quill.Style, cols*rows)
	g.Clear()
}

func (g *TextGrid) Size() (int, int) {
	return g.cols, g.rows
}

func (g *TextGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = ' '
		g.styles[i] = quill.Style{}
	}
}

func (g *TextGrid) SetCell(x, y int, c rune, style quill.Style) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y*g.cols+x] = c
	g.styles[y*g.cols+x] = style
}

func (g *TextGrid) SetCursor(x, y int) {
	g.cursorX, g.cursorY = x, y
}

func (g *TextGrid) Cursor() (int, int) {
	return g.cursorX, g.cursorY
}

func (g *TextGrid) Flush() error {
	g.flushes++
	return nil
}

// Flushes counts completed frames.
func (g *TextGrid) Flushes() int {
	return g.flushes
}

func (g *TextGrid) Cell(x, y int) (rune, quill.Style) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return 0, quill.Style{}
	}
	return g.cells[y*g.cols+x], g.styles[y*g.cols+x]
}

// Row returns one grid row with trailing blanks removed.
func (g *TextGrid) Row(y int) string {
	if y < 0 || y >= g.rows {
		return ""
	}
	return strings.TrimRight(string(g.cells[y*g.cols:(y+1)*g.cols]), " ")
}

// InCells fills the cell coordinates of an event whose X and Y are pixels.
func InCells(ev quill.Event) quill.Event {
	ev.Col = ev.X / CellWidth
	ev.Row = ev.Y / CellHeight
	return ev
}
