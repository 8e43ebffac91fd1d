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
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	quill "github.com/timburks/quill/types"
)

// The Dispatcher carries platform events to a View and decides, according to
// the termination policy, when the pump is finished. Every backend routes its
// native events through one.
type Dispatcher struct {
	view   quill.View
	policy TerminationPolicy
	log    *slog.Logger
	diag   io.Writer

	done    bool
	handled int
}

func NewDispatcher(v quill.View, opts Options) *Dispatcher {
	return &Dispatcher{
		view:   v,
		policy: opts.Policy,
		log:    opts.Log(),
		diag:   opts.Diagnostics,
	}
}

// Done reports whether the pump should stop.
func (d *Dispatcher) Done() bool {
	return d.done
}

// Handled is the number of events dispatched so far.
func (d *Dispatcher) Handled() int {
	return d.handled
}

// Stop ends the pump without dispatching anything else.
func (d *Dispatcher) Stop() {
	d.done = true
}

// Dispatch delivers one event and returns true once the pump is finished.
// Events arriving after that point are dropped.
func (d *Dispatcher) Dispatch(ev quill.Event) bool {
	if d.done {
		d.log.Debug("event dropped after termination", "event", ev.Kind.String())
		return true
	}
	d.handled++
	if d.diag != nil {
		fmt.Fprintln(d.diag, ev.Label())
	}
	d.log.Debug("event", "kind", ev.Kind.String(), "key", int(ev.Key), "rune", string(ev.Rune),
		"x", ev.X, "y", ev.Y)

	var err error
	switch ev.Kind {
	case quill.EventPaint, quill.EventResize:
		if d.view != nil {
			err = d.view.Draw()
		}
	case quill.EventKeyDown, quill.EventMouseDown, quill.EventMouseUp:
		if d.view != nil {
			err = d.view.HandleInput(ev)
			if err == nil {
				err = d.view.Draw()
			}
		}
		if ev.Kind == quill.EventKeyDown && d.policy == ExitOnFirstKey {
			d.done = true
		}
	case quill.EventClose:
		d.done = true
	}

	switch {
	case err == nil:
	case errors.Is(err, quill.ErrQuit):
		d.log.Debug("quit requested by view")
		d.done = true
	default:
		d.log.Error("view failed to handle event", "event", ev.Kind.String(), "error", err)
	}
	return d.done
}
