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
package win32

import (
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

// Window messages
const (
	wmSize        = 0x0005
	wmPaint       = 0x000F
	wmClose       = 0x0010
	wmKeyDown     = 0x0100
	wmChar        = 0x0102
	wmSysKeyDown  = 0x0104
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmApp         = 0x8000

	// wmWake is posted to the window to make GetMessage return.
	wmWake = wmApp + 1
)

// Virtual key codes
const (
	vkBack   = 0x08
	vkTab    = 0x09
	vkReturn = 0x0D
	vkEscape = 0x1B
	vkPrior  = 0x21
	vkNext   = 0x22
	vkEnd    = 0x23
	vkHome   = 0x24
	vkLeft   = 0x25
	vkUp     = 0x26
	vkRight  = 0x27
	vkDown   = 0x28
	vkDelete = 0x2E
)

var virtualKeys = map[uintptr]quill.Key{
	vkBack:   quill.KeyBackspace,
	vkTab:    quill.KeyTab,
	vkReturn: quill.KeyEnter,
	vkEscape: quill.KeyEsc,
	vkPrior:  quill.KeyPgup,
	vkNext:   quill.KeyPgdn,
	vkEnd:    quill.KeyEnd,
	vkHome:   quill.KeyHome,
	vkLeft:   quill.KeyArrowLeft,
	vkUp:     quill.KeyArrowUp,
	vkRight:  quill.KeyArrowRight,
	vkDown:   quill.KeyArrowDown,
	vkDelete: quill.KeyDelete,
}

var controlKeys = map[uintptr]quill.Key{
	'A': quill.KeyCtrlA,
	'E': quill.KeyCtrlE,
	'L': quill.KeyCtrlL,
	'Q': quill.KeyCtrlQ,
}

// lowHigh splits an LPARAM into its signed low and high words.
func lowHigh(lparam uintptr) (int, int) {
	return int(int16(lparam & 0xffff)), int(int16((lparam >> 16) & 0xffff))
}

// translate converts a window message. Printable keys are reported by
// WM_CHAR, so WM_KEYDOWN only produces events for keys without a character.
func translate(msg uint32, wparam, lparam uintptr, mods quill.Modifier) (quill.Event, bool) {
	switch msg {
	case wmPaint:
		return quill.Event{Kind: quill.EventPaint}, true
	case wmClose:
		return quill.Event{Kind: quill.EventClose}, true
	case wmSize:
		w, h := lowHigh(lparam)
		return quill.Event{Kind: quill.EventResize, X: w, Y: h,
			Col: w / platform.CellWidth, Row: h / platform.CellHeight}, true
	case wmKeyDown, wmSysKeyDown:
		if mods&quill.ModCtrl != 0 {
			if k, ok := controlKeys[wparam]; ok {
				return quill.Event{Kind: quill.EventKeyDown, Key: k, Modifiers: mods}, true
			}
		}
		if k, ok := virtualKeys[wparam]; ok {
			return quill.Event{Kind: quill.EventKeyDown, Key: k, Modifiers: mods}, true
		}
		return quill.Event{}, false
	case wmChar:
		r := rune(wparam)
		if r < 0x20 || r == 0x7f {
			// already reported by WM_KEYDOWN
			return quill.Event{}, false
		}
		return quill.Event{Kind: quill.EventKeyDown, Rune: r, Modifiers: mods &^ quill.ModShift}, true
	}

	var ev quill.Event
	switch msg {
	case wmLButtonDown:
		ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonLeft
	case wmLButtonUp:
		ev.Kind, ev.Button = quill.EventMouseUp, quill.ButtonLeft
	case wmRButtonDown:
		ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonRight
	case wmRButtonUp:
		ev.Kind, ev.Button = quill.EventMouseUp, quill.ButtonRight
	case wmMButtonDown:
		ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonMiddle
	case wmMButtonUp:
		ev.Kind, ev.Button = quill.EventMouseUp, quill.ButtonMiddle
	default:
		return quill.Event{}, false
	}
	ev.X, ev.Y = lowHigh(lparam)
	ev.Modifiers = mods
	return platform.InCells(ev), true
}
