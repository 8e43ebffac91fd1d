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
package cocoa

import (
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

// NSEventModifierFlags
const (
	flagShift   = 1 << 17
	flagControl = 1 << 18
	flagOption  = 1 << 19
	flagCommand = 1 << 20
)

// Virtual key codes from HIToolbox/Events.h
var keyCodes = map[uint16]quill.Key{
	0x24: quill.KeyEnter,
	0x30: quill.KeyTab,
	0x33: quill.KeyBackspace,
	0x35: quill.KeyEsc,
	0x4C: quill.KeyEnter,
	0x73: quill.KeyHome,
	0x74: quill.KeyPgup,
	0x75: quill.KeyDelete,
	0x77: quill.KeyEnd,
	0x79: quill.KeyPgdn,
	0x7B: quill.KeyArrowLeft,
	0x7C: quill.KeyArrowRight,
	0x7D: quill.KeyArrowDown,
	0x7E: quill.KeyArrowUp,
}

var controlKeys = map[rune]quill.Key{
	'a': quill.KeyCtrlA,
	'e': quill.KeyCtrlE,
	'l': quill.KeyCtrlL,
	'q': quill.KeyCtrlQ,
}

func modifiers(flags uint64) quill.Modifier {
	var mods quill.Modifier
	if flags&flagShift != 0 {
		mods |= quill.ModShift
	}
	if flags&flagControl != 0 {
		mods |= quill.ModCtrl
	}
	if flags&flagOption != 0 {
		mods |= quill.ModAlt
	}
	if flags&flagCommand != 0 {
		mods |= quill.ModMeta
	}
	return mods
}

// keyEvent converts a keyDown:. chars is the typed text and bare the text
// with modifiers ignored.
func keyEvent(keyCode uint16, chars, bare string, flags uint64) quill.Event {
	ev := quill.Event{Kind: quill.EventKeyDown, Modifiers: modifiers(flags)}
	if k, ok := keyCodes[keyCode]; ok {
		ev.Key = k
		return ev
	}
	if flags&flagControl != 0 {
		if r := []rune(bare); len(r) == 1 {
			lower := r[0]
			if lower >= 'A' && lower <= 'Z' {
				lower += 'a' - 'A'
			}
			if k, ok := controlKeys[lower]; ok {
				ev.Key = k
				return ev
			}
		}
	}
	// function keys arrive in the private use area
	if r := []rune(chars); len(r) > 0 && r[0] >= 0x20 && r[0] != 0x7f && (r[0] < 0xF700 || r[0] > 0xF8FF) {
		ev.Rune = r[0]
		ev.Modifiers &^= quill.ModShift
		return ev
	}
	ev.Key = quill.KeyUnsupported
	return ev
}

// mouseEvent converts a click in view coordinates, which have their origin
// at the bottom left, into a top-left based event.
func mouseEvent(down bool, button int, x, y, viewHeight float64, flags uint64) quill.Event {
	ev := quill.Event{
		Kind:      quill.EventMouseUp,
		Button:    button,
		X:         int(x),
		Y:         int(viewHeight - y),
		Modifiers: modifiers(flags),
	}
	if down {
		ev.Kind = quill.EventMouseDown
	}
	return platform.InCells(ev)
}

func resizeEvent(width, height int) quill.Event {
	return quill.Event{Kind: quill.EventResize, X: width, Y: height,
		Col: width / platform.CellWidth, Row: height / platform.CellHeight}
}
