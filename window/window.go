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
package window

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/quill/commander"
	quill "github.com/timburks/quill/types"
)

var (
	textStyle    = quill.Style{Foreground: quill.ColorWhite, Background: quill.ColorBlack}
	tildeStyle   = quill.Style{Foreground: quill.ColorBlue, Background: quill.ColorBlack}
	infoStyle    = quill.Style{Reverse: true}
	messageStyle = quill.Style{Foreground: quill.ColorWhite, Background: quill.ColorBlack}
)

// The Window draws the state of a Document and feeds input to a Commander.
type Window struct {
	Name      string
	doc       quill.Document
	surface   quill.Surface
	commander *commander.Commander
	offset    quill.Position // first visible line and column
}

var _ quill.View = (*Window)(nil)

func NewWindow(doc quill.Document, surface quill.Surface) *Window {
	return &Window{
		Name:      "untitled",
		doc:       doc,
		surface:   surface,
		commander: commander.NewCommander(doc),
	}
}

func (w *Window) Commander() *commander.Commander {
	return w.commander
}

func (w *Window) Offset() quill.Position {
	return w.offset
}

// HandleInput hands an event to the commander and scrolls to keep the
// cursor visible. quill.ErrQuit is passed through unchanged.
func (w *Window) HandleInput(ev quill.Event) error {
	err := w.commander.ProcessEvent(ev, w.offset)
	if w.surface != nil {
		cols, rows := w.surface.Size()
		w.scroll(editRows(rows), cols)
	}
	return err
}

func editRows(rows int) int {
	if rows > 2 {
		return rows - 2
	}
	return rows
}

// scroll adjusts the offset so that the cursor is on screen.
func (w *Window) scroll(rows, cols int) {
	cursor := w.commander.Cursor()
	if cursor.Line < w.offset.Line {
		w.offset.Line = cursor.Line
	}
	if rows > 0 && cursor.Line >= w.offset.Line+rows {
		w.offset.Line = cursor.Line - rows + 1
	}
	if cursor.Column < w.offset.Column {
		w.offset.Column = cursor.Column
	}
	if cols <= 0 {
		return
	}
	// columns count runes but the surface counts cells
	line := w.line(cursor.Line)
	end := min(cursor.Column, len(line))
	cursorWidth := 1
	if end < len(line) {
		cursorWidth = max(runewidth.RuneWidth(line[end]), 1)
	}
	for w.offset.Column < end &&
		runewidth.StringWidth(string(line[w.offset.Column:end]))+cursorWidth > cols {
		w.offset.Column++
	}
}

func (w *Window) line(i int) []rune {
	lines := strings.Split(w.doc.Text(), "\n")
	if i < 0 || i >= len(lines) {
		return nil
	}
	return []rune(lines[i])
}

// Draw renders the visible rows, the info bar and the message bar.
func (w *Window) Draw() error {
	if w.surface == nil {
		return nil
	}
	cols, rows := w.surface.Size()
	textRows := editRows(rows)
	w.commander.SetPageRows(textRows)
	w.scroll(textRows, cols)

	w.surface.Clear()
	lines := strings.Split(w.doc.Text(), "\n")
	for y := 0; y < textRows; y++ {
		i := y + w.offset.Line
		if i >= len(lines) {
			w.surface.SetCell(0, y, '~', tildeStyle)
			continue
		}
		w.drawLine(y, []rune(lines[i]), cols)
	}
	if rows > 2 {
		w.drawInfoBar(rows-2, cols, len(lines))
		w.drawMessageBar(rows-1, cols)
	}

	cursor := w.commander.Cursor()
	x := 0
	if cursor.Line < len(lines) {
		line := []rune(lines[cursor.Line])
		if w.offset.Column < cursor.Column && cursor.Column <= len(line) {
			x = runewidth.StringWidth(string(line[w.offset.Column:cursor.Column]))
		}
	}
	w.surface.SetCursor(x, cursor.Line-w.offset.Line)
	return w.surface.Flush()
}

func (w *Window) drawLine(y int, line []rune, cols int) {
	if w.offset.Column >= len(line) {
		return
	}
	x := 0
	for _, c := range line[w.offset.Column:] {
		width := runewidth.RuneWidth(c)
		if width == 0 {
			continue
		}
		if x+width > cols {
			break
		}
		w.surface.SetCell(x, y, c, textStyle)
		x += width
	}
}

func (w *Window) drawInfoBar(y, cols, lineCount int) {
	cursor := w.commander.Cursor()
	finalText := fmt.Sprintf(" %d:%d %d lines ", cursor.Line+1, cursor.Column+1, lineCount)
	text := " quill - " + w.Name + " "
	for runewidth.StringWidth(text) < cols-len(finalText) {
		text += " "
	}
	text += finalText
	w.drawText(y, cols, text, infoStyle)
}

func (w *Window) drawMessageBar(y, cols int) {
	c := w.commander
	var line string
	switch c.GetMode() {
	case commander.ModeLisp:
		line = "> " + c.LispText()
	default:
		line = c.Message()
	}
	w.drawText(y, cols, line, messageStyle)
}

func (w *Window) drawText(y, cols int, text string, style quill.Style) {
	x := 0
	for _, c := range text {
		width := runewidth.RuneWidth(c)
		if width == 0 {
			continue
		}
		if x+width > cols {
			return
		}
		w.surface.SetCell(x, y, c, style)
		x += width
	}
}
