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
package commander

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	quill "github.com/timburks/quill/types"
)

// Commander modes
const (
	ModeEdit = 0
	ModeLisp = 1
)

const tabText = "        "

// The Commander converts user input into edits of a Document.
type Commander struct {
	doc      quill.Document
	eval     *Evaluator
	mode     int
	cursor   quill.Position
	pageRows int    // rows moved by page up/down
	lispText string // lisp expression as it is being typed
	message  string // status message
	debug    bool   // debug mode displays information about events
}

func NewCommander(doc quill.Document) *Commander {
	return &Commander{doc: doc, eval: NewEvaluator(doc), mode: ModeEdit, pageRows: 20}
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) Cursor() quill.Position {
	return c.cursor
}

// SetCursor moves the cursor, keeping it inside the document.
func (c *Commander) SetCursor(p quill.Position) {
	c.cursor = c.clamp(p)
}

func (c *Commander) SetPageRows(n int) {
	if n > 0 {
		c.pageRows = n
	}
}

func (c *Commander) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Commander) Message() string {
	return c.message
}

func (c *Commander) LispText() string {
	return c.lispText
}

func (c *Commander) clamp(p quill.Position) quill.Position {
	count := c.doc.LineCount()
	if count <= 0 {
		return quill.Position{}
	}
	p.Line = min(max(p.Line, 0), count-1)
	p.Column = min(max(p.Column, 0), c.doc.LineLength(p.Line))
	return p
}

// ProcessEvent applies one input event. offset is the scroll position of
// the view, used to map mouse cells to document positions.
func (c *Commander) ProcessEvent(ev quill.Event, offset quill.Position) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", ev)
	}
	switch ev.Kind {
	case quill.EventKeyDown:
		if c.mode == ModeLisp {
			return c.ProcessKeyLispMode(ev)
		}
		return c.ProcessKeyEditMode(ev)
	case quill.EventMouseDown:
		return c.ProcessMouse(ev, offset)
	}
	return nil
}

func (c *Commander) ProcessMouse(ev quill.Event, offset quill.Position) error {
	if ev.Button != quill.ButtonLeft && ev.Button != 0 {
		return nil
	}
	c.SetCursor(quill.Position{Line: ev.Row + offset.Line, Column: ev.Col + offset.Column})
	return nil
}

func (c *Commander) ProcessKeyEditMode(ev quill.Event) error {
	if ev.Modifiers&quill.ModCtrl != 0 && (ev.Rune == 'q' || ev.Rune == 'Q') {
		return quill.ErrQuit
	}
	switch ev.Key {
	case quill.KeyNone:
		if ev.Rune != 0 {
			return c.insert(string(ev.Rune))
		}
	case quill.KeyCtrlQ:
		return quill.ErrQuit
	case quill.KeyCtrlL:
		c.mode = ModeLisp
		c.lispText = ""
	case quill.KeyEnter:
		return c.insert("\n")
	case quill.KeyTab:
		return c.insert(tabText)
	case quill.KeyBackspace:
		return c.backspace()
	case quill.KeyDelete:
		return c.deleteForward()
	case quill.KeyEsc:
		c.message = ""
	case quill.KeyArrowUp:
		c.SetCursor(quill.Position{Line: c.cursor.Line - 1, Column: c.cursor.Column})
	case quill.KeyArrowDown:
		c.SetCursor(quill.Position{Line: c.cursor.Line + 1, Column: c.cursor.Column})
	case quill.KeyArrowLeft:
		c.moveLeft()
	case quill.KeyArrowRight:
		c.moveRight()
	case quill.KeyCtrlA, quill.KeyHome:
		c.cursor.Column = 0
	case quill.KeyCtrlE, quill.KeyEnd:
		c.cursor.Column = c.doc.LineLength(c.cursor.Line)
	case quill.KeyPgup:
		c.SetCursor(quill.Position{Line: c.cursor.Line - c.pageRows, Column: c.cursor.Column})
	case quill.KeyPgdn:
		c.SetCursor(quill.Position{Line: c.cursor.Line + c.pageRows, Column: c.cursor.Column})
	}
	return nil
}

func (c *Commander) ProcessKeyLispMode(ev quill.Event) error {
	switch ev.Key {
	case quill.KeyEsc:
		c.mode = ModeEdit
	case quill.KeyEnter:
		c.mode = ModeEdit
		result, err := c.eval.Eval(c.lispText)
		if err != nil {
			c.message = err.Error()
		} else {
			c.message = result
		}
		// the expression may have changed the text under the cursor
		c.SetCursor(c.cursor)
	case quill.KeyBackspace:
		if r := []rune(c.lispText); len(r) > 0 {
			c.lispText = string(r[:len(r)-1])
		}
	case quill.KeyNone:
		if ev.Rune != 0 {
			c.lispText += string(ev.Rune)
		}
	}
	return nil
}

func (c *Commander) insert(text string) error {
	if err := c.doc.Insert(c.cursor, text); err != nil {
		c.message = err.Error()
		return errors.Wrap(err, "inserting at cursor")
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		c.cursor.Column += len([]rune(text))
	} else {
		c.cursor.Line += len(lines) - 1
		c.cursor.Column = len([]rune(lines[len(lines)-1]))
	}
	return nil
}

func (c *Commander) backspace() error {
	start := c.cursor
	switch {
	case c.cursor.Column > 0:
		start.Column--
	case c.cursor.Line > 0:
		start = quill.Position{Line: c.cursor.Line - 1, Column: c.doc.LineLength(c.cursor.Line - 1)}
	default:
		return nil
	}
	if err := c.doc.Delete(start, c.cursor); err != nil {
		c.message = err.Error()
		return errors.Wrap(err, "deleting before cursor")
	}
	c.cursor = start
	return nil
}

func (c *Commander) deleteForward() error {
	end := c.cursor
	switch {
	case c.cursor.Column < c.doc.LineLength(c.cursor.Line):
		end.Column++
	case c.cursor.Line < c.doc.LineCount()-1:
		end = quill.Position{Line: c.cursor.Line + 1, Column: 0}
	default:
		return nil
	}
	if err := c.doc.Delete(c.cursor, end); err != nil {
		c.message = err.Error()
		return errors.Wrap(err, "deleting at cursor")
	}
	return nil
}

func (c *Commander) moveLeft() {
	switch {
	case c.cursor.Column > 0:
		c.cursor.Column--
	case c.cursor.Line > 0:
		c.cursor.Line--
		c.cursor.Column = c.doc.LineLength(c.cursor.Line)
	}
}

func (c *Commander) moveRight() {
	switch {
	case c.cursor.Column < c.doc.LineLength(c.cursor.Line):
		c.cursor.Column++
	case c.cursor.Line < c.doc.LineCount()-1:
		c.cursor.Line++
		c.cursor.Column = 0
	}
}
