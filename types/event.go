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
package types

import "fmt"

// Event kinds
type EventKind int

const (
	EventPaint EventKind = iota
	EventKeyDown
	EventMouseDown
	EventMouseUp
	EventResize
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventPaint:
		return "paint"
	case EventKeyDown:
		return "key-down"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseUp:
		return "mouse-up"
	case EventResize:
		return "resize"
	case EventClose:
		return "close"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Keys that are not printable runes. KeyNone means Event.Rune holds the key.
type Key int

const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPgup
	KeyPgdn
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEsc
	KeyCtrlA
	KeyCtrlE
	KeyCtrlL
	KeyCtrlQ
	KeyUnsupported
)

// Modifier flags
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Mouse buttons
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// An Event is a platform input or paint notification.
// X and Y are in the backend's native units (pixels for windows, cells for
// terminals); Col and Row are always cells.
type Event struct {
	Kind      EventKind
	Key       Key
	Rune      rune
	Modifiers Modifier
	X         int
	Y         int
	Col       int
	Row       int
	Button    int

	// Source names the native event when it differs from the generic label.
	Source string
}

// Name returns the diagnostic label printed for each received event.
func (e Event) Name() string {
	if e.Source != "" {
		return e.Source + " event"
	}
	switch e.Kind {
	case EventPaint:
		return "Paint event"
	case EventKeyDown:
		return "Key press event"
	case EventMouseDown:
		return "Mouse button press event"
	case EventMouseUp:
		return "Mouse button release event"
	case EventResize:
		return "Resize event"
	case EventClose:
		return "Close event"
	}
	return "Unknown event"
}

// Label is Name plus the pointer location for mouse presses.
func (e Event) Label() string {
	if e.Kind == EventMouseDown {
		return fmt.Sprintf("%s at (%d, %d)", e.Name(), e.X, e.Y)
	}
	return e.Name()
}

func (e Event) IsKey() bool {
	return e.Kind == EventKeyDown
}

func (e Event) IsMouse() bool {
	return e.Kind == EventMouseDown || e.Kind == EventMouseUp
}
