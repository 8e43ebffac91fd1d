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

import "context"

// A Position is a line/column location in a document.
// Lines and columns are 0-based and columns count runes.
type Position struct {
	Line   int
	Column int
}

// Compare returns -1, 0 or 1 as a is before, equal to or after b.
func Compare(a, b Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Column < b.Column:
		return -1
	case a.Column > b.Column:
		return 1
	}
	return 0
}

type Size struct {
	Width  int
	Height int
}

// Colors used when drawing cells
type Color int

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

type Style struct {
	Foreground Color
	Background Color
	Reverse    bool
}

// Document stores text and applies edits to it.
type Document interface {
	// Text returns the full current text.
	Text() string
	// Insert inserts text immediately before pos.
	Insert(pos Position, text string) error
	// Delete removes the half-open range [start, end).
	Delete(start, end Position) error

	LineCount() int
	LineLength(line int) int
}

// View draws a document and reacts to input.
type View interface {
	Draw() error
	HandleInput(ev Event) error
}

// A Surface is a grid of character cells that a View draws on.
type Surface interface {
	Size() (cols, rows int)
	Clear()
	SetCell(x, y int, c rune, style Style)
	SetCursor(x, y int)
	Flush() error
}

// Platform hides OS-specific window creation and event retrieval.
type Platform interface {
	// Name identifies the backend ("win32", "cocoa", "x11", ...).
	Name() string

	// CreateWindow creates and shows one top-level window.
	CreateWindow(width, height int) error

	// PumpEvents blocks, dispatching events to v until the termination
	// policy, a quit request, or ctx ends the loop.
	PumpEvents(ctx context.Context, v View) error

	// Size returns the size the window was created with.
	Size() Size

	// Surface returns the cell grid views draw on, or nil before CreateWindow.
	Surface() Surface

	// Close releases the window and any connection to the display.
	Close() error
}
