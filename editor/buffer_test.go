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
package editor

import (
	"errors"
	"testing"

	quill "github.com/timburks/quill/types"
)

const address = `THE GETTYSBURG ADDRESS:

Four score and seven years ago our fathers brought forth on this
continent a new nation, conceived in liberty and dedicated to the
proposition that all men are created equal.`

func setup(t *testing.T) *Buffer {
	t.Helper()
	b := NewBufferFromString(address)
	if b.LineCount() != 5 {
		t.Fatalf("Unexpected line count: %d", b.LineCount())
	}
	return b
}

func final(t *testing.T, b *Buffer) {
	t.Helper()
	if text := b.Text(); text != address {
		t.Errorf("Buffer changed:\n%s", text)
	}
}

func pos(line, col int) quill.Position {
	return quill.Position{Line: line, Column: col}
}

func TestEmptyBuffer(t *testing.T) {
	b := NewBuffer()
	if b.LineCount() != 1 || b.Text() != "" {
		t.Errorf("Unexpected empty buffer: %d rows, %q", b.LineCount(), b.Text())
	}
	if err := b.Insert(pos(0, 0), "hi"); err != nil {
		t.Fatalf("Insert failed: %+v", err)
	}
	if b.Text() != "hi" {
		t.Errorf("Unexpected text: %q", b.Text())
	}
}

func TestInsertWithinLine(t *testing.T) {
	b := setup(t)
	if err := b.Insert(pos(0, 4), "BIG LEAGUE "); err != nil {
		t.Fatalf("Insert failed: %+v", err)
	}
	expected := "THE BIG LEAGUE GETTYSBURG ADDRESS:"
	if line := b.Line(0); line != expected {
		t.Errorf("Unexpected line after insertion: '%s'", line)
	}
}

func TestInsertAtEndOfLine(t *testing.T) {
	b := setup(t)
	if err := b.Insert(pos(2, b.LineLength(2)), " very"); err != nil {
		t.Fatalf("Insert failed: %+v", err)
	}
	expected := "Four score and seven years ago our fathers brought forth on this very"
	if line := b.Line(2); line != expected {
		t.Errorf("Unexpected line after insertion: '%s'", line)
	}
}

func TestInsertMultiline(t *testing.T) {
	b := NewBufferFromString("hello")
	if err := b.Insert(pos(0, 2), "a\nmiddle\nb"); err != nil {
		t.Fatalf("Insert failed: %+v", err)
	}
	if text := b.Text(); text != "hea\nmiddle\nbllo" {
		t.Errorf("Unexpected text: %q", text)
	}
	if b.LineCount() != 3 {
		t.Errorf("Unexpected line count: %d", b.LineCount())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	for _, p := range []quill.Position{pos(-1, 0), pos(5, 0), pos(0, -1), pos(0, 35), pos(1, 1)} {
		b := setup(t)
		err := b.Insert(p, "x")
		if !errors.Is(err, quill.ErrOutOfRange) {
			t.Errorf("Insert at %v: expected out of range, got %v", p, err)
		}
		final(t, b)
	}
}

func TestDeleteWithinLine(t *testing.T) {
	b := setup(t)
	if err := b.Delete(pos(0, 0), pos(0, 4)); err != nil {
		t.Fatalf("Delete failed: %+v", err)
	}
	if line := b.Line(0); line != "GETTYSBURG ADDRESS:" {
		t.Errorf("Unexpected remainder after deletion: '%s'", line)
	}
}

func TestDeleteAcrossLines(t *testing.T) {
	b := setup(t)
	if err := b.Delete(pos(2, 60), pos(3, 10)); err != nil {
		t.Fatalf("Delete failed: %+v", err)
	}
	expected := "Four score and seven years ago our fathers brought forth on a new nation, conceived in liberty and dedicated to the"
	if line := b.Line(2); line != expected {
		t.Errorf("Unexpected line after deletion: '%s'", line)
	}
	if b.LineCount() != 4 {
		t.Errorf("Unexpected line count: %d", b.LineCount())
	}
}

func TestDeleteEmptyRange(t *testing.T) {
	b := setup(t)
	if err := b.Delete(pos(3, 5), pos(3, 5)); err != nil {
		t.Fatalf("Delete failed: %+v", err)
	}
	final(t, b)
}

func TestDeleteInvalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end quill.Position
	}{
		{"end precedes start", pos(2, 5), pos(2, 1)},
		{"end on earlier line", pos(3, 0), pos(2, 10)},
		{"start past line", pos(0, 99), pos(1, 0)},
		{"end past document", pos(0, 0), pos(9, 0)},
		{"negative column", pos(0, -2), pos(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t)
			err := b.Delete(tt.start, tt.end)
			var oor *quill.OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("Expected OutOfRangeError, got %v", err)
			}
			final(t, b)
		})
	}
}

// inserting and then deleting the inserted range leaves the text unchanged
func TestInsertDeleteRoundTrip(t *testing.T) {
	inserts := []struct {
		at   quill.Position
		text string
	}{
		{pos(0, 0), "hello, world!"},
		{pos(2, 10), "\n"},
		{pos(4, 43), "\nthe end"},
		{pos(1, 0), "one\ntwo\nthree"},
		{pos(3, 7), "ünïcödé"},
	}
	for _, in := range inserts {
		b := setup(t)
		if err := b.Insert(in.at, in.text); err != nil {
			t.Fatalf("Insert %q failed: %+v", in.text, err)
		}
		if err := b.Delete(in.at, EndOf(in.at, in.text)); err != nil {
			t.Fatalf("Delete %q failed: %+v", in.text, err)
		}
		final(t, b)
	}
}

func TestEndOf(t *testing.T) {
	if p := EndOf(pos(2, 3), "abc"); p != pos(2, 6) {
		t.Errorf("Unexpected end: %v", p)
	}
	if p := EndOf(pos(2, 3), "ab\ncd\ne"); p != pos(4, 1) {
		t.Errorf("Unexpected end: %v", p)
	}
}
