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
package termbox

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	tb "github.com/nsf/termbox-go"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "termbox"

// Terminal is the part of termbox used by the backend.
type Terminal interface {
	Init() error
	Close()
	PollEvent() tb.Event
	Interrupt()
	Size() (int, int)
	Clear(fg, bg tb.Attribute) error
	SetCell(x, y int, ch rune, fg, bg tb.Attribute)
	SetCursor(x, y int)
	Flush() error
}

// console drives the real terminal.
type console struct{}

func (console) Init() error {
	if err := tb.Init(); err != nil {
		return err
	}
	tb.SetInputMode(tb.InputEsc | tb.InputMouse)
	tb.SetOutputMode(tb.Output256)
	return nil
}

func (console) Close()                                         { tb.Close() }
func (console) PollEvent() tb.Event                            { return tb.PollEvent() }
func (console) Interrupt()                                     { tb.Interrupt() }
func (console) Size() (int, int)                               { return tb.Size() }
func (console) Clear(fg, bg tb.Attribute) error                { return tb.Clear(fg, bg) }
func (console) SetCell(x, y int, ch rune, fg, bg tb.Attribute) { tb.SetCell(x, y, ch, fg, bg) }
func (console) SetCursor(x, y int)                             { tb.SetCursor(x, y) }
func (console) Flush() error                                   { return tb.Flush() }

// Platform uses the whole terminal as its one window.
type Platform struct {
	opts platform.Options
	term Terminal

	// wake asks the running pump to interrupt PollEvent
	wake chan struct{}

	mu      sync.Mutex
	handle  platform.Handle
	size    quill.Size
	open    bool
	pending []quill.Event
}

var _ quill.Platform = (*Platform)(nil)

func New(opts platform.Options) *Platform {
	return NewWithTerminal(console{}, opts)
}

// NewWithTerminal builds a backend on an alternate terminal implementation.
func NewWithTerminal(term Terminal, opts platform.Options) *Platform {
	opts.Logger = opts.Log()
	return &Platform{opts: opts, term: term, wake: make(chan struct{}, 1)}
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
	if p.open {
		return quill.NewWindowCreationError(Name, "init", platform.ErrWindowExists)
	}
	if err := p.term.Init(); err != nil {
		return quill.NewWindowCreationError(Name, "init", err)
	}
	p.handle = platform.Windows.Reserve(p)
	p.size = quill.Size{Width: width, Height: height}
	p.open = true
	p.pending = nil
	cols, rows := p.term.Size()
	p.opts.Logger.Debug("terminal opened", "backend", Name, "cols", cols, "rows", rows)
	return nil
}

// Deliver queues an event from outside the terminal and wakes the pump.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.mu.Lock()
	if !p.open || h != p.handle {
		p.mu.Unlock()
		return
	}
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Platform) takePending() []quill.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.pending
	p.pending = nil
	return events
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	p.mu.Lock()
	open := p.open
	p.mu.Unlock()
	if !open {
		return quill.ErrNoWindow
	}
	defer p.Close()

	// termbox's Interrupt blocks until PollEvent takes it, so each one runs
	// on its own goroutine and the pump polls until all of them have landed
	// before it returns.
	var issued atomic.Int64
	consumed := int64(0)
	interrupt := func() {
		issued.Add(1)
		go p.term.Interrupt()
	}
	stop := make(chan struct{})
	waker := make(chan struct{})
	go func() {
		defer close(waker)
		for {
			select {
			case <-ctx.Done():
				interrupt()
				return
			case <-p.wake:
				interrupt()
			case <-stop:
				return
			}
		}
	}()
	defer func() {
		close(stop)
		<-waker
		for consumed < issued.Load() {
			switch p.term.PollEvent().Type {
			case tb.EventInterrupt:
				consumed++
			case tb.EventError:
				return
			}
		}
	}()

	d := platform.NewDispatcher(v, p.opts)
	// the terminal is visible as soon as it is opened
	if d.Dispatch(quill.Event{Kind: quill.EventPaint}) {
		return nil
	}
	for {
		tev := p.term.PollEvent()
		switch tev.Type {
		case tb.EventInterrupt:
			consumed++
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, ev := range p.takePending() {
				if d.Dispatch(ev) {
					return nil
				}
			}
			continue
		case tb.EventError:
			return errors.Wrap(tev.Err, "termbox")
		}
		ev, ok := translate(tev)
		if !ok {
			continue
		}
		if d.Dispatch(ev) {
			return nil
		}
	}
}

func (p *Platform) Size() quill.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

func (p *Platform) Surface() quill.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil
	}
	return &surface{term: p.term}
}

func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil
	}
	platform.Windows.Unregister(p.handle)
	p.term.Close()
	p.open = false
	p.opts.Logger.Debug("terminal closed", "backend", Name)
	return nil
}

// translate converts a termbox event. Events with no counterpart report false.
func translate(tev tb.Event) (quill.Event, bool) {
	switch tev.Type {
	case tb.EventKey:
		ev := quill.Event{Kind: quill.EventKeyDown}
		if tev.Mod&tb.ModAlt != 0 {
			ev.Modifiers |= quill.ModAlt
		}
		if tev.Ch != 0 {
			ev.Rune = tev.Ch
			return ev, true
		}
		if tev.Key == tb.KeySpace {
			ev.Rune = ' '
			return ev, true
		}
		ev.Key = key(tev.Key)
		return ev, true
	case tb.EventMouse:
		ev := quill.Event{Col: tev.MouseX, Row: tev.MouseY}
		ev.X = tev.MouseX * platform.CellWidth
		ev.Y = tev.MouseY * platform.CellHeight
		switch tev.Key {
		case tb.MouseLeft:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonLeft
		case tb.MouseMiddle:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonMiddle
		case tb.MouseRight:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonRight
		case tb.MouseRelease:
			ev.Kind = quill.EventMouseUp
		default:
			return quill.Event{}, false
		}
		return ev, true
	case tb.EventResize:
		return quill.Event{
			Kind: quill.EventResize,
			X:    tev.Width * platform.CellWidth,
			Y:    tev.Height * platform.CellHeight,
			Col:  tev.Width,
			Row:  tev.Height,
		}, true
	}
	return quill.Event{}, false
}

func key(k tb.Key) quill.Key {
	switch k {
	case tb.KeyArrowDown:
		return quill.KeyArrowDown
	case tb.KeyArrowLeft:
		return quill.KeyArrowLeft
	case tb.KeyArrowRight:
		return quill.KeyArrowRight
	case tb.KeyArrowUp:
		return quill.KeyArrowUp
	case tb.KeyBackspace, tb.KeyBackspace2:
		return quill.KeyBackspace
	case tb.KeyDelete:
		return quill.KeyDelete
	case tb.KeyCtrlA:
		return quill.KeyCtrlA
	case tb.KeyCtrlE:
		return quill.KeyCtrlE
	case tb.KeyCtrlL:
		return quill.KeyCtrlL
	case tb.KeyCtrlQ:
		return quill.KeyCtrlQ
	case tb.KeyEnd:
		return quill.KeyEnd
	case tb.KeyEnter:
		return quill.KeyEnter
	case tb.KeyEsc:
		return quill.KeyEsc
	case tb.KeyHome:
		return quill.KeyHome
	case tb.KeyPgdn:
		return quill.KeyPgdn
	case tb.KeyPgup:
		return quill.KeyPgup
	case tb.KeyTab:
		return quill.KeyTab
	default:
		return quill.KeyUnsupported
	}
}

type surface struct {
	term Terminal
}

func (s *surface) Size() (int, int) {
	return s.term.Size()
}

func (s *surface) Clear() {
	s.term.Clear(tb.ColorDefault, tb.ColorDefault)
}

func (s *surface) SetCell(x, y int, c rune, style quill.Style) {
	fg, bg := attributes(style)
	s.term.SetCell(x, y, c, fg, bg)
}

func (s *surface) SetCursor(x, y int) {
	s.term.SetCursor(x, y)
}

func (s *surface) Flush() error {
	return s.term.Flush()
}

// attributes maps a style onto termbox colors, which share the same order.
func attributes(style quill.Style) (tb.Attribute, tb.Attribute) {
	fg := tb.Attribute(style.Foreground)
	bg := tb.Attribute(style.Background)
	if style.Reverse {
		fg |= tb.AttrReverse
	}
	return fg, bg
}
