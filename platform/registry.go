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
	"sync"

	quill "github.com/timburks/quill/types"
)

// A Handle is an opaque native window identifier (HWND, NSWindow*, X11 Window).
type Handle uintptr

// EventSink is implemented by backends that receive events from native
// callbacks rather than from a loop they own.
type EventSink interface {
	Deliver(h Handle, ev quill.Event)
}

// A Registry maps native handles to the backend that owns them, so that
// callbacks invoked by the OS can find their Platform. The registry holds
// no ownership: backends add themselves on creation and remove themselves
// on Close.
type Registry struct {
	mu      sync.Mutex
	entries map[Handle]EventSink
	next    Handle
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]EventSink)}
}

// Windows is the process-wide registry used by native backends.
var Windows = NewRegistry()

func (r *Registry) Register(h Handle, sink EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[h] = sink
}

// Reserve allocates a fresh synthetic handle for backends whose native
// handle is not known until after the callback target must exist.
func (r *Registry) Reserve(sink EventSink) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	for r.entries[r.next] != nil {
		r.next++
	}
	r.entries[r.next] = sink
	return r.next
}

func (r *Registry) Lookup(h Handle) (EventSink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sink, ok := r.entries[h]
	return sink, ok
}

func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, h)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
