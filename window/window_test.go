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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/quill/editor"
	"github.com/timburks/quill/mocks"
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

func key(k quill.Key) quill.Event {
	return quill.Event{Kind: quill.EventKeyDown, Key: k}
}

func TestDrawVisibleRows(t *testing.T) {
	grid := platform.NewTextGrid(40, 5)
	w := NewWindow(editor.NewBufferFromString("first\nsecond"), grid)

	require.NoError(t, w.Draw())
	assert.Equal(t, "first", grid.Row(0))
	assert.Equal(t, "second", grid.Row(1))
	assert.Equal(t, "~", grid.Row(2))
	assert.True(t, strings.HasPrefix(grid.Row(3), " quill - untitled"))
	assert.True(t, strings.HasSuffix(grid.Row(3), "1:1 2 lines"))
	assert.Equal(t, 1, grid.Flushes())

	x, y := grid.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestDrawWithoutSurface(t *testing.T) {
	w := NewWindow(editor.NewBuffer(), nil)
	assert.NoError(t, w.Draw())
	assert.NoError(t, w.HandleInput(quill.Event{Kind: quill.EventKeyDown, Rune: 'a'}))
}

func TestTypingScrollsDown(t *testing.T) {
	grid := platform.NewTextGrid(20, 5)
	b := editor.NewBuffer()
	w := NewWindow(b, grid)

	for _, r := range "abcd" {
		require.NoError(t, w.HandleInput(quill.Event{Kind: quill.EventKeyDown, Rune: r}))
		require.NoError(t, w.HandleInput(key(quill.KeyEnter)))
	}
	require.NoError(t, w.Draw())

	// five lines, three visible, cursor on the last
	assert.Equal(t, 2, w.Offset().Line)
	assert.Equal(t, "c", grid.Row(0))
	assert.Equal(t, "d", grid.Row(1))
	assert.Equal(t, "", grid.Row(2))
	_, y := grid.Cursor()
	assert.Equal(t, 2, y)
}

func TestMouseUsesScrollOffset(t *testing.T) {
	grid := platform.NewTextGrid(20, 5)
	b := editor.NewBufferFromString("0\n1\n2\n3\n4\n5")
	w := NewWindow(b, grid)
	w.Commander().SetCursor(quill.Position{Line: 5})
	require.NoError(t, w.Draw())
	require.Equal(t, 3, w.Offset().Line)

	ev := quill.Event{Kind: quill.EventMouseDown, Button: quill.ButtonLeft, Col: 0, Row: 0}
	require.NoError(t, w.HandleInput(ev))
	assert.Equal(t, quill.Position{Line: 3}, w.Commander().Cursor())
}

func TestWideRunes(t *testing.T) {
	grid := platform.NewTextGrid(10, 4)
	b := editor.NewBufferFromString("日本a")
	w := NewWindow(b, grid)
	w.Commander().SetCursor(quill.Position{Line: 0, Column: 2})
	require.NoError(t, w.Draw())

	c, _ := grid.Cell(2, 0)
	assert.Equal(t, '本', c)
	c, _ = grid.Cell(4, 0)
	assert.Equal(t, 'a', c)
	x, _ := grid.Cursor()
	assert.Equal(t, 4, x)
}

func TestWideRunesScrollHorizontally(t *testing.T) {
	grid := platform.NewTextGrid(10, 4)
	w := NewWindow(editor.NewBufferFromString(strings.Repeat("世", 20)), grid)

	for i := 0; i < 8; i++ {
		require.NoError(t, w.HandleInput(key(quill.KeyArrowRight)))
	}
	require.NoError(t, w.Draw())

	assert.Equal(t, quill.Position{Line: 0, Column: 8}, w.Commander().Cursor())
	assert.Equal(t, 4, w.Offset().Column)
	x, _ := grid.Cursor()
	assert.Equal(t, 8, x)
	cols, _ := grid.Size()
	assert.Less(t, x, cols)

	require.NoError(t, w.HandleInput(key(quill.KeyHome)))
	require.NoError(t, w.Draw())
	assert.Equal(t, 0, w.Offset().Column)
	x, _ = grid.Cursor()
	assert.Equal(t, 0, x)
}

func TestLispPromptOnMessageBar(t *testing.T) {
	grid := platform.NewTextGrid(30, 4)
	w := NewWindow(editor.NewBuffer(), grid)
	require.NoError(t, w.HandleInput(key(quill.KeyCtrlL)))
	require.NoError(t, w.HandleInput(quill.Event{Kind: quill.EventKeyDown, Rune: '('}))
	require.NoError(t, w.Draw())
	assert.Equal(t, "> (", grid.Row(3))
}

func TestQuitPassesThrough(t *testing.T) {
	w := NewWindow(editor.NewBuffer(), platform.NewTextGrid(10, 4))
	assert.ErrorIs(t, w.HandleInput(key(quill.KeyCtrlQ)), quill.ErrQuit)
}

func TestDocumentErrorsReachCaller(t *testing.T) {
	doc := mocks.NewDocument(t)
	doc.On("Insert", quill.Position{}, "z").Return(&quill.OutOfRangeError{Op: "insert", Reason: "locked"})
	doc.On("Text").Return("")
	doc.On("LineCount").Return(1).Maybe()
	doc.On("LineLength", 0).Return(0).Maybe()

	grid := platform.NewTextGrid(40, 4)
	w := NewWindow(doc, grid)
	err := w.HandleInput(quill.Event{Kind: quill.EventKeyDown, Rune: 'z'})
	assert.ErrorIs(t, err, quill.ErrOutOfRange)

	require.NoError(t, w.Draw())
	assert.Contains(t, grid.Row(3), "locked")
}
