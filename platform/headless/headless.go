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
package headless

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "headless"

const queueSize = 64

// Platform is a backend with no native window. Events are supplied with
// Inject, which makes it the backend of choice for tests and scripted runs.
type Platform struct {
	opts   platform.Options
	events chan quill.Event

	// FailCreate, when set, makes CreateWindow fail with this cause.
	FailCreate error

	mu       sync.Mutex
	handle   platform.Handle
	size     quill.Size
	grid     *platform.TextGrid
	created  bool
	released bool
}

var _ quill.Platform = (*Platform)(nil)

func New(opts platform.Options) *Platform {
	opts.Logger = opts.Log()
	return &Platform{opts: opts, events: make(chan quill.Event, queueSize)}
}

func (p *Platform) Name() string {
	return Name
}

func (p *Platform) CreateWindow(width, height int) error {
	if err := platform.CheckSize(Name, width, height); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.created && !p.released {
		return quill.NewWindowCreationError(Name, "create window", platform.ErrWindowExists)
	}
	h := platform.Windows.Reserve(p)
	if p.FailCreate != nil {
		platform.Windows.Unregister(h)
		return quill.NewWindowCreationError(Name, "create window", p.FailCreate)
	}
	p.handle = h
	p.size = quill.Size{Width: width, Height: height}
	p.grid = platform.GridForWindow(width, height)
	p.created = true
	p.released = false
	p.opts.Logger.Debug("window created", "backend", Name, "width", width, "height", height)
	// Each window gets its own queue, so nothing injected for an earlier
	// window is seen by this one. A freshly shown window is painted once.
	p.events = make(chan quill.Event, queueSize)
	p.events <- quill.Event{Kind: quill.EventPaint}
	return nil
}

func (p *Platform) queue() chan quill.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events
}

// Inject queues an event for the pump.
func (p *Platform) Inject(ev quill.Event) {
	p.queue() <- ev
}

// Deliver lets native-style callbacks reach the pump through the registry.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.Inject(ev)
}

// Feed turns text read from r into key presses, one per rune, with newlines
// as Enter. The end of input closes the window. Feed returns when r is
// exhausted or ctx is done.
func (p *Platform) Feed(ctx context.Context, r io.Reader) error {
	send := func(ev quill.Event) bool {
		select {
		case p.queue() <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			send(quill.Event{Kind: quill.EventClose})
			return nil
		}
		if err != nil {
			send(quill.Event{Kind: quill.EventClose})
			return err
		}
		ev := quill.Event{Kind: quill.EventKeyDown, Rune: c}
		switch c {
		case '\n':
			ev = quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyEnter}
		case '\r':
			continue
		case '\t':
			ev = quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyTab}
		}
		if !send(ev) {
			return ctx.Err()
		}
	}
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	if !p.hasWindow() {
		return quill.ErrNoWindow
	}
	defer p.Close()

	events := p.queue()
	d := platform.NewDispatcher(v, p.opts)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev.Kind == quill.EventResize {
				p.grid.Resize(max(ev.X/platform.CellWidth, 1), max(ev.Y/platform.CellHeight, 1))
			}
			if d.Dispatch(ev) {
				return nil
			}
		}
	}
}

func (p *Platform) hasWindow() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created && !p.released
}

func (p *Platform) Size() quill.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

func (p *Platform) Surface() quill.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.grid == nil {
		return nil
	}
	return p.grid
}

// Grid exposes the drawn cells.
func (p *Platform) Grid() *platform.TextGrid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grid
}

// Released reports whether the window handle has been given back.
func (p *Platform) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func (p *Platform) Handle() platform.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.created || p.released {
		return nil
	}
	platform.Windows.Unregister(p.handle)
	p.released = true
	p.opts.Logger.Debug("window released", "backend", Name)
	return nil
}
