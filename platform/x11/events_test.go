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
	"testing"

	"github.com/stretchr/testify/assert"

	quill "github.com/timburks/quill/types"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name   string
		keysym uint32
		state  uint32
		text   string
		want   quill.Event
	}{
		{"letter", 'h', 0, "h", quill.Event{Kind: quill.EventKeyDown, Rune: 'h'}},
		{"shifted", 'H', shiftMask, "H", quill.Event{Kind: quill.EventKeyDown, Rune: 'H'}},
		{"return", 0xff0d, 0, "\r", quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyEnter}},
		{"ctrl q", 'q', controlMask, "\x11",
			quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyCtrlQ, Modifiers: quill.ModCtrl}},
		{"ctrl shift l", 'L', controlMask | shiftMask, "\x0c",
			quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyCtrlL, Modifiers: quill.ModCtrl | quill.ModShift}},
		{"shift alone", 0xffe1, 0, "", quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyUnsupported}},
		{"alt letter", 'x', mod1Mask, "x", quill.Event{Kind: quill.EventKeyDown, Rune: 'x', Modifiers: quill.ModAlt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyEvent(tt.keysym, tt.state, tt.text))
		})
	}
}

func TestButtonEvent(t *testing.T) {
	ev, ok := buttonEvent(true, 1, 100, 50, 0)
	assert.True(t, ok)
	assert.Equal(t, "Mouse button press event at (100, 50)", ev.Label())
	assert.Equal(t, 12, ev.Col)
	assert.Equal(t, 3, ev.Row)

	ev, ok = buttonEvent(false, 3, 0, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, quill.EventMouseUp, ev.Kind)
	assert.Equal(t, quill.ButtonRight, ev.Button)

	_, ok = buttonEvent(true, 4, 0, 0, 0)
	assert.False(t, ok)
}

func TestExposeName(t *testing.T) {
	assert.Equal(t, "Expose event", exposeEvent().Name())
	assert.Equal(t, quill.Event{Kind: quill.EventResize, X: 800, Y: 600, Col: 100, Row: 37}, resizeEvent(800, 600))
}
