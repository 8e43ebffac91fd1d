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
package x11

import (
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

// Modifier masks from X.h
const (
	shiftMask   = 1 << 0
	controlMask = 1 << 2
	mod1Mask    = 1 << 3
	mod4Mask    = 1 << 6
)

var keysyms = map[uint32]quill.Key{
	0xff08: quill.KeyBackspace,
	0xff09: quill.KeyTab,
	0xff0d: quill.KeyEnter,
	0xff1b: quill.KeyEsc,
	0xff50: quill.KeyHome,
	0xff51: quill.KeyArrowLeft,
	0xff52: quill.KeyArrowUp,
	0xff53: quill.KeyArrowRight,
	0xff54: quill.KeyArrowDown,
	0xff55: quill.KeyPgup,
	0xff56: quill.KeyPgdn,
	0xff57: quill.KeyEnd,
	0xff8d: quill.KeyEnter,
	0xffff: quill.KeyDelete,
}

var controlKeys = map[uint32]quill.Key{
	'a': quill.KeyCtrlA,
	'e': quill.KeyCtrlE,
	'l': quill.KeyCtrlL,
	'q': quill.KeyCtrlQ,
}

func modifiers(state uint32) quill.Modifier {
	var mods quill.Modifier
	if state&shiftMask != 0 {
		mods |= quill.ModShift
	}
	if state&controlMask != 0 {
		mods |= quill.ModCtrl
	}
	if state&mod1Mask != 0 {
		mods |= quill.ModAlt
	}
	if state&mod4Mask != 0 {
		mods |= quill.ModMeta
	}
	return mods
}

// keyEvent converts a KeyPress. Every press is reported; keys with no
// meaning to the editor come through as KeyUnsupported.
func keyEvent(keysym, state uint32, text string) quill.Event {
	ev := quill.Event{Kind: quill.EventKeyDown, Modifiers: modifiers(state)}
	if k, ok := keysyms[keysym]; ok {
		ev.Key = k
		return ev
	}
	if state&controlMask != 0 {
		lower := keysym
		if lower >= 'A' && lower <= 'Z' {
			lower += 'a' - 'A'
		}
		if k, ok := controlKeys[lower]; ok {
			ev.Key = k
			return ev
		}
	}
	if r := []rune(text); len(r) > 0 && r[0] >= 0x20 && r[0] != 0x7f {
		ev.Rune = r[0]
		ev.Modifiers &^= quill.ModShift
		return ev
	}
	ev.Key = quill.KeyUnsupported
	return ev
}

// buttonEvent converts a ButtonPress or ButtonRelease. Wheel buttons are
// dropped.
func buttonEvent(press bool, button, x, y int, state uint32) (quill.Event, bool) {
	ev := quill.Event{Kind: quill.EventMouseUp, X: x, Y: y, Modifiers: modifiers(state)}
	if press {
		ev.Kind = quill.EventMouseDown
	}
	switch button {
	case 1:
		ev.Button = quill.ButtonLeft
	case 2:
		ev.Button = quill.ButtonMiddle
	case 3:
		ev.Button = quill.ButtonRight
	default:
		return quill.Event{}, false
	}
	return platform.InCells(ev), true
}

func exposeEvent() quill.Event {
	return quill.Event{Kind: quill.EventPaint, Source: "Expose"}
}

func resizeEvent(width, height int) quill.Event {
	return quill.Event{Kind: quill.EventResize, X: width, Y: height,
		Col: width / platform.CellWidth, Row: height / platform.CellHeight}
}
