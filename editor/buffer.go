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
	"strings"

	quill "github.com/timburks/quill/types"
)

// A Buffer holds the text of a document as a list of rows.
// It always has at least one row.
type Buffer struct {
	Name string
	rows []*Row
}

var _ quill.Document = (*Buffer)(nil)

func NewBuffer() *Buffer {
	return &Buffer{rows: []*Row{NewRow("")}}
}

func NewBufferFromString(s string) *Buffer {
	b := &Buffer{}
	b.LoadString(s)
	return b
}

// LoadString replaces the contents of the buffer.
func (b *Buffer) LoadString(s string) {
	lines := strings.Split(s, "\n")
	b.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		b.rows = append(b.rows, NewRow(line))
	}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row.Text))
	}
	return sb.String()
}

func (b *Buffer) LineCount() int {
	return len(b.rows)
}

func (b *Buffer) LineLength(line int) int {
	if line < 0 || line >= len(b.rows) {
		return 0
	}
	return b.rows[line].Length()
}

// Line returns the text of one line, or "" past the end.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.rows) {
		return ""
	}
	return b.rows[line].String()
}

func (b *Buffer) TextAfter(line, col int) string {
	if line < 0 || line >= len(b.rows) {
		return ""
	}
	return b.rows[line].TextAfter(col)
}

func (b *Buffer) valid(p quill.Position) bool {
	if p.Line < 0 || p.Line >= len(b.rows) {
		return false
	}
	return p.Column >= 0 && p.Column <= b.rows[p.Line].Length()
}

// Insert inserts text immediately before pos. Newlines in text split rows.
func (b *Buffer) Insert(pos quill.Position, text string) error {
	if !b.valid(pos) {
		return &quill.OutOfRangeError{Op: "insert", Start: pos, End: pos, Reason: "no such location"}
	}
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	row := b.rows[pos.Line]
	if len(lines) == 1 {
		row.Insert(pos.Column, []rune(text))
		return nil
	}
	tail := row.Split(pos.Column)
	row.Join(NewRow(lines[0]))

	added := make([]*Row, 0, len(lines)-1)
	for _, line := range lines[1 : len(lines)-1] {
		added = append(added, NewRow(line))
	}
	last := NewRow(lines[len(lines)-1])
	last.Join(tail)
	added = append(added, last)

	rows := make([]*Row, 0, len(b.rows)+len(added))
	rows = append(rows, b.rows[:pos.Line+1]...)
	rows = append(rows, added...)
	rows = append(rows, b.rows[pos.Line+1:]...)
	b.rows = rows
	return nil
}

// Delete removes the half-open range [start, end), joining rows when the
// range spans lines.
func (b *Buffer) Delete(start, end quill.Position) error {
	switch {
	case !b.valid(start):
		return &quill.OutOfRangeError{Op: "delete", Start: start, End: end, Reason: "invalid start"}
	case !b.valid(end):
		return &quill.OutOfRangeError{Op: "delete", Start: start, End: end, Reason: "invalid end"}
	case quill.Compare(end, start) < 0:
		return &quill.OutOfRangeError{Op: "delete", Start: start, End: end, Reason: "end precedes start"}
	}
	if start.Line == end.Line {
		b.rows[start.Line].Delete(start.Column, end.Column)
		return nil
	}
	first := b.rows[start.Line]
	first.Delete(start.Column, first.Length())
	last := b.rows[end.Line]
	first.Join(&Row{Text: last.Text[end.Column:]})
	b.rows = append(b.rows[:start.Line+1], b.rows[end.Line+1:]...)
	return nil
}

// EndOf returns the position just after text when it is inserted at pos.
func EndOf(pos quill.Position, text string) quill.Position {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return quill.Position{Line: pos.Line, Column: pos.Column + len([]rune(text))}
	}
	return quill.Position{
		Line:   pos.Line + len(lines) - 1,
		Column: len([]rune(lines[len(lines)-1])),
	}
}
