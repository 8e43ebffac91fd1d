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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/quill/editor"
	"github.com/timburks/quill/mocks"
	quill "github.com/timburks/quill/types"
)

func key(k quill.Key) quill.Event {
	return quill.Event{Kind: quill.EventKeyDown, Key: k}
}

func char(r rune) quill.Event {
	return quill.Event{Kind: quill.EventKeyDown, Rune: r}
}

func typeText(t *testing.T, c *Commander, text string) {
	t.Helper()
	for _, r := range text {
		ev := char(r)
		if r == '\n' {
			ev = key(quill.KeyEnter)
		}
		require.NoError(t, c.ProcessEvent(ev, quill.Position{}))
	}
}

func TestTyping(t *testing.T) {
	b := editor.NewBuffer()
	c := NewCommander(b)
	typeText(t, c, "hello\nworld")

	assert.Equal(t, "hello\nworld", b.Text())
	assert.Equal(t, quill.Position{Line: 1, Column: 5}, c.Cursor())
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := editor.NewBufferFromString("ab\ncd")
	c := NewCommander(b)
	c.SetCursor(quill.Position{Line: 1, Column: 0})

	require.NoError(t, c.ProcessEvent(key(quill.KeyBackspace), quill.Position{}))
	assert.Equal(t, "abcd", b.Text())
	assert.Equal(t, quill.Position{Line: 0, Column: 2}, c.Cursor())

	require.NoError(t, c.ProcessEvent(key(quill.KeyBackspace), quill.Position{}))
	assert.Equal(t, "acd", b.Text())

	// nothing before the start of the document
	c.SetCursor(quill.Position{})
	require.NoError(t, c.ProcessEvent(key(quill.KeyBackspace), quill.Position{}))
	assert.Equal(t, "acd", b.Text())
}

func TestDeleteForward(t *testing.T) {
	b := editor.NewBufferFromString("ab\ncd")
	c := NewCommander(b)
	c.SetCursor(quill.Position{Line: 0, Column: 2})

	require.NoError(t, c.ProcessEvent(key(quill.KeyDelete), quill.Position{}))
	assert.Equal(t, "abcd", b.Text())
	require.NoError(t, c.ProcessEvent(key(quill.KeyDelete), quill.Position{}))
	assert.Equal(t, "abd", b.Text())
	assert.Equal(t, quill.Position{Line: 0, Column: 2}, c.Cursor())
}

func TestCursorMovement(t *testing.T) {
	b := editor.NewBufferFromString("long line\nab\nlonger line")
	c := NewCommander(b)
	c.SetCursor(quill.Position{Line: 0, Column: 8})

	steps := []struct {
		key  quill.Key
		want quill.Position
	}{
		{quill.KeyArrowDown, quill.Position{Line: 1, Column: 2}},
		{quill.KeyArrowRight, quill.Position{Line: 2, Column: 0}},
		{quill.KeyArrowLeft, quill.Position{Line: 1, Column: 2}},
		{quill.KeyEnd, quill.Position{Line: 1, Column: 2}},
		{quill.KeyHome, quill.Position{Line: 1, Column: 0}},
		{quill.KeyArrowLeft, quill.Position{Line: 0, Column: 9}},
		{quill.KeyArrowUp, quill.Position{Line: 0, Column: 9}},
		{quill.KeyPgdn, quill.Position{Line: 2, Column: 9}},
		{quill.KeyCtrlE, quill.Position{Line: 2, Column: 11}},
		{quill.KeyPgup, quill.Position{Line: 0, Column: 9}},
	}
	for i, step := range steps {
		require.NoError(t, c.ProcessEvent(key(step.key), quill.Position{}))
		assert.Equal(t, step.want, c.Cursor(), "step %d", i)
	}
}

func TestMouseDownPlacesCursor(t *testing.T) {
	b := editor.NewBufferFromString("one\ntwo\nthree\nfour")
	c := NewCommander(b)

	ev := quill.Event{Kind: quill.EventMouseDown, Button: quill.ButtonLeft, Col: 2, Row: 1}
	require.NoError(t, c.ProcessEvent(ev, quill.Position{Line: 1}))
	assert.Equal(t, quill.Position{Line: 2, Column: 2}, c.Cursor())

	// clicks past the end of a line land at its end
	ev = quill.Event{Kind: quill.EventMouseDown, Button: quill.ButtonLeft, Col: 40, Row: 9}
	require.NoError(t, c.ProcessEvent(ev, quill.Position{}))
	assert.Equal(t, quill.Position{Line: 3, Column: 4}, c.Cursor())

	// right clicks and releases do nothing
	require.NoError(t, c.ProcessEvent(quill.Event{Kind: quill.EventMouseDown, Button: quill.ButtonRight}, quill.Position{}))
	require.NoError(t, c.ProcessEvent(quill.Event{Kind: quill.EventMouseUp, Button: quill.ButtonLeft}, quill.Position{}))
	assert.Equal(t, quill.Position{Line: 3, Column: 4}, c.Cursor())
}

func TestQuit(t *testing.T) {
	c := NewCommander(editor.NewBuffer())
	assert.ErrorIs(t, c.ProcessEvent(key(quill.KeyCtrlQ), quill.Position{}), quill.ErrQuit)
	ev := quill.Event{Kind: quill.EventKeyDown, Rune: 'q', Modifiers: quill.ModCtrl}
	assert.ErrorIs(t, c.ProcessEvent(ev, quill.Position{}), quill.ErrQuit)
}

func TestInsertFailureIsReported(t *testing.T) {
	doc := mocks.NewDocument(t)
	doc.On("Insert", quill.Position{}, "x").Return(&quill.OutOfRangeError{Op: "insert", Reason: "read only"})

	c := NewCommander(doc)
	err := c.ProcessEvent(char('x'), quill.Position{})
	assert.ErrorIs(t, err, quill.ErrOutOfRange)
	assert.Contains(t, c.Message(), "read only")
	assert.Equal(t, quill.Position{}, c.Cursor())
}

func TestLispMode(t *testing.T) {
	b := editor.NewBufferFromString("world")
	c := NewCommander(b)

	require.NoError(t, c.ProcessEvent(key(quill.KeyCtrlL), quill.Position{}))
	assert.Equal(t, ModeLisp, c.GetMode())
	typeText(t, c, `(doc-insert 0 0 "hello ")`)
	assert.Equal(t, `(doc-insert 0 0 "hello ")`, c.LispText())
	assert.Equal(t, "world", b.Text())

	require.NoError(t, c.ProcessEvent(key(quill.KeyEnter), quill.Position{}))
	assert.Equal(t, ModeEdit, c.GetMode())
	assert.Equal(t, "hello world", b.Text())
	assert.Equal(t, "1", c.Message())
}

func TestEvaluator(t *testing.T) {
	b := editor.NewBufferFromString("abc\ndef")
	e := NewEvaluator(b)

	result, err := e.Eval("(doc-line-count)")
	require.NoError(t, err)
	assert.Equal(t, "2", result)

	result, err = e.Eval("(doc-line-length 1)")
	require.NoError(t, err)
	assert.Equal(t, "3", result)

	_, err = e.Eval(`(doc-insert 1 3 "ghi")`)
	require.NoError(t, err)
	assert.Equal(t, "abc\ndefghi", b.Text())

	_, err = e.Eval("(doc-delete 0 3 1 0)")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghi", b.Text())
}

func TestEvaluatorErrors(t *testing.T) {
	b := editor.NewBufferFromString("abc")
	e := NewEvaluator(b)

	_, err := e.Eval(`(doc-insert 5 0 "x")`)
	assert.Error(t, err)
	_, err = e.Eval(`(doc-insert "a" 0 "x")`)
	assert.Error(t, err)
	_, err = e.Eval("(doc-delete 0 2 0 1)")
	assert.Error(t, err)
	assert.Equal(t, "abc", b.Text())
}

func TestEvalFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "init.lsp")
	require.NoError(t, os.WriteFile(script, []byte(`
(doc-insert 0 0 "first")
(doc-insert 0 5 " line")
`), 0o644))

	b := editor.NewBuffer()
	_, err := NewEvaluator(b).EvalFile(script)
	require.NoError(t, err)
	assert.Equal(t, "first line", b.Text())

	_, err = NewEvaluator(b).EvalFile(filepath.Join(t.TempDir(), "missing.lsp"))
	assert.Error(t, err)
}
