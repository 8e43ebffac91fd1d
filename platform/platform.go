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
package platform

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	quill "github.com/timburks/quill/types"
)

// A TerminationPolicy decides which events end an event pump.
// It is applied the same way by every backend.
type TerminationPolicy int

const (
	// ExitOnClose ends the pump only on an explicit close or quit request.
	ExitOnClose TerminationPolicy = iota
	// ExitOnFirstKey dispatches the first key press and then ends the pump.
	ExitOnFirstKey
)

func (p TerminationPolicy) String() string {
	switch p {
	case ExitOnClose:
		return "close"
	case ExitOnFirstKey:
		return "first-key"
	}
	return "unknown"
}

// ParsePolicy accepts the names printed by TerminationPolicy.String.
func ParsePolicy(s string) (TerminationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "close":
		return ExitOnClose, nil
	case "first-key", "firstkey", "key":
		return ExitOnFirstKey, nil
	}
	return ExitOnClose, errors.Newf("unknown termination policy %q (want close or first-key)", s)
}

// Options are shared by every backend.
type Options struct {
	Policy TerminationPolicy

	// Logger receives debug records for each event. Defaults to a discard logger.
	Logger *slog.Logger

	// Diagnostics receives one human-readable line per event when set.
	Diagnostics io.Writer
}

// Log returns the configured logger or one that discards everything.
func (o Options) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// ErrWindowExists is wrapped when CreateWindow is called twice.
var ErrWindowExists = errors.New("window already created")

// CheckSize validates window dimensions before any native call is made.
func CheckSize(backend string, width, height int) error {
	if width <= 0 || height <= 0 {
		return quill.NewWindowCreationError(backend, "validate size",
			errors.Newf("dimensions must be positive, got %dx%d", width, height))
	}
	return nil
}
