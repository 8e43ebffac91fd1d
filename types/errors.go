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

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrWindowCreation matches every WindowCreationError.
	ErrWindowCreation = errors.New("window creation failed")

	// ErrOutOfRange matches every OutOfRangeError.
	ErrOutOfRange = errors.New("position out of range")

	// ErrQuit is returned by a View to ask the event pump to stop.
	ErrQuit = errors.New("quit requested")

	// ErrNoWindow is returned when events are pumped without a window.
	ErrNoWindow = errors.New("no window")
)

// WindowCreationError reports a failure to produce a window or a display
// connection.
type WindowCreationError struct {
	Backend string
	Op      string
	Err     error
}

func NewWindowCreationError(backend, op string, err error) *WindowCreationError {
	return &WindowCreationError{Backend: backend, Op: op, Err: err}
}

func (e *WindowCreationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, ErrWindowCreation)
	}
	return fmt.Sprintf("%s: %s: %v: %v", e.Backend, e.Op, ErrWindowCreation, e.Err)
}

func (e *WindowCreationError) Unwrap() error {
	return e.Err
}

func (e *WindowCreationError) Is(target error) bool {
	return target == ErrWindowCreation
}

// OutOfRangeError reports a document edit addressing an invalid location.
type OutOfRangeError struct {
	Op     string
	Start  Position
	End    Position
	Reason string
}

func (e *OutOfRangeError) Error() string {
	if e.Op == "insert" {
		return fmt.Sprintf("insert at %d:%d: %s", e.Start.Line, e.Start.Column, e.Reason)
	}
	return fmt.Sprintf("%s %d:%d-%d:%d: %s", e.Op,
		e.Start.Line, e.Start.Column, e.End.Line, e.End.Column, e.Reason)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
