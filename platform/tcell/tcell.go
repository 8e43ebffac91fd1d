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
package tcell

import (
	"context"
	"sync"

	tc "github.com/gdamore/tcell/v2"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "tcell"

// Platform shows its window on a tcell.Screen.
type Platform struct {
	opts   platform.Options
	screen tc.Screen

	mu      sync.Mutex
	handle  platform.Handle
	size    quill.Size
	open    bool
	buttons tc.ButtonMask
}

var _ quill.Platform = (*Platform)(nil)

// New opens the controlling terminal when the window is created.
func New(opts platform.Options) *Platform {
	return NewWithScreen(nil, opts)
}

// NewWithScreen uses screen instead of the terminal. Tests pass a
// tcell.SimulationScreen.
func NewWithScreen(screen tc.Screen, opts platform.Options) *Platform {
	opts.Logger = opts.Log()
	return &Platform{opts: opts, screen: screen}
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
	if p.screen == nil {
		screen, err := tc.NewScreen()
		if err != nil {
			return quill.NewWindowCreationError(Name, "new screen", err)
		}
		p.screen = screen
	}
	if err := p.screen.Init(); err != nil {
		return quill.NewWindowCreationError(Name, "init", err)
	}
	p.screen.EnableMouse()
	p.screen.Clear()

	p.handle = platform.Windows.Reserve(p)
	p.size = quill.Size{Width: width, Height: height}
	p.open = true
	p.buttons = tc.ButtonNone
	cols, rows := p.screen.Size()
	p.opts.Logger.Debug("screen opened", "backend", Name, "cols", cols, "rows", rows)
	return nil
}

// Deliver posts an event from another goroutine into the screen's queue.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.mu.Lock()
	screen := p.screen
	p.mu.Unlock()
	if screen != nil {
		screen.PostEvent(tc.NewEventInterrupt(ev))
	}
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	p.mu.Lock()
	open, screen := p.open, p.screen
	p.mu.Unlock()
	if !open {
		return quill.ErrNoWindow
	}
	defer p.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(tc.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	d := platform.NewDispatcher(v, p.opts)
	if d.Dispatch(quill.Event{Kind: quill.EventPaint}) {
		return nil
	}
	for {
		tev := screen.PollEvent()
		if tev == nil {
			// the screen was finalized underneath us
			return nil
		}
		if iev, ok := tev.(*tc.EventInterrupt); ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			if ev, ok := iev.Data().(quill.Event); ok {
				if d.Dispatch(ev) {
					return nil
				}
			}
			continue
		}
		ev, ok := p.translate(tev)
		if !ok {
			continue
		}
		if ev.Kind == quill.EventResize {
			screen.Sync()
		}
		if d.Dispatch(ev) {
			return nil
		}
	}
}

// translate converts a tcell event. Mouse releases are recognized by the
// button mask going back to empty.
func (p *Platform) translate(tev tc.Event) (quill.Event, bool) {
	switch tev := tev.(type) {
	case *tc.EventKey:
		ev := quill.Event{Kind: quill.EventKeyDown, Modifiers: modifiers(tev.Modifiers())}
		if tev.Key() == tc.KeyRune {
			ev.Rune = tev.Rune()
			return ev, true
		}
		ev.Key = key(tev.Key())
		if ev.Key == quill.KeyCtrlQ {
			ev.Modifiers |= quill.ModCtrl
		}
		return ev, true
	case *tc.EventMouse:
		x, y := tev.Position()
		ev := quill.Event{
			X:         x * platform.CellWidth,
			Y:         y * platform.CellHeight,
			Col:       x,
			Row:       y,
			Modifiers: modifiers(tev.Modifiers()),
		}
		buttons := tev.Buttons() & (tc.Button1 | tc.Button2 | tc.Button3)
		prev := p.buttons
		p.buttons = buttons
		switch {
		case buttons&tc.Button1 != 0 && prev&tc.Button1 == 0:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonLeft
		case buttons&tc.Button3 != 0 && prev&tc.Button3 == 0:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonMiddle
		case buttons&tc.Button2 != 0 && prev&tc.Button2 == 0:
			ev.Kind, ev.Button = quill.EventMouseDown, quill.ButtonRight
		case buttons == tc.ButtonNone && prev != tc.ButtonNone:
			ev.Kind, ev.Button = quill.EventMouseUp, button(prev)
		default:
			// motion or wheel
			return quill.Event{}, false
		}
		return ev, true
	case *tc.EventResize:
		w, h := tev.Size()
		return quill.Event{
			Kind: quill.EventResize,
			X:    w * platform.CellWidth,
			Y:    h * platform.CellHeight,
			Col:  w,
			Row:  h,
		}, true
	}
	return quill.Event{}, false
}

func button(mask tc.ButtonMask) int {
	switch {
	case mask&tc.Button1 != 0:
		return quill.ButtonLeft
	case mask&tc.Button3 != 0:
		return quill.ButtonMiddle
	case mask&tc.Button2 != 0:
		return quill.ButtonRight
	}
	return 0
}

func modifiers(m tc.ModMask) quill.Modifier {
	var mod quill.Modifier
	if m&tc.ModShift != 0 {
		mod |= quill.ModShift
	}
	if m&tc.ModCtrl != 0 {
		mod |= quill.ModCtrl
	}
	if m&tc.ModAlt != 0 {
		mod |= quill.ModAlt
	}
	if m&tc.ModMeta != 0 {
		mod |= quill.ModMeta
	}
	return mod
}

func key(k tc.Key) quill.Key {
	switch k {
	case tc.KeyUp:
		return quill.KeyArrowUp
	case tc.KeyDown:
		return quill.KeyArrowDown
	case tc.KeyLeft:
		return quill.KeyArrowLeft
	case tc.KeyRight:
		return quill.KeyArrowRight
	case tc.KeyHome:
		return quill.KeyHome
	case tc.KeyEnd:
		return quill.KeyEnd
	case tc.KeyPgUp:
		return quill.KeyPgup
	case tc.KeyPgDn:
		return quill.KeyPgdn
	case tc.KeyEnter:
		return quill.KeyEnter
	case tc.KeyTab:
		return quill.KeyTab
	case tc.KeyBackspace, tc.KeyBackspace2:
		return quill.KeyBackspace
	case tc.KeyDelete:
		return quill.KeyDelete
	case tc.KeyEscape:
		return quill.KeyEsc
	case tc.KeyCtrlA:
		return quill.KeyCtrlA
	case tc.KeyCtrlE:
		return quill.KeyCtrlE
	case tc.KeyCtrlL:
		return quill.KeyCtrlL
	case tc.KeyCtrlQ:
		return quill.KeyCtrlQ
	}
	return quill.KeyUnsupported
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
	return &surface{screen: p.screen}
}

func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil
	}
	platform.Windows.Unregister(p.handle)
	p.screen.Fini()
	p.open = false
	p.opts.Logger.Debug("screen closed", "backend", Name)
	return nil
}

type surface struct {
	screen tc.Screen
}

func (s *surface) Size() (int, int) {
	return s.screen.Size()
}

func (s *surface) Clear() {
	s.screen.Clear()
}

func (s *surface) SetCell(x, y int, c rune, style quill.Style) {
	s.screen.SetContent(x, y, c, nil, tcellStyle(style))
}

func (s *surface) SetCursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

func (s *surface) Flush() error {
	s.screen.Show()
	return nil
}

var colors = map[quill.Color]tc.Color{
	quill.ColorDefault: tc.ColorDefault,
	quill.ColorBlack:   tc.ColorBlack,
	quill.ColorRed:     tc.ColorMaroon,
	quill.ColorGreen:   tc.ColorGreen,
	quill.ColorYellow:  tc.ColorOlive,
	quill.ColorBlue:    tc.ColorNavy,
	quill.ColorMagenta: tc.ColorPurple,
	quill.ColorCyan:    tc.ColorTeal,
	quill.ColorWhite:   tc.ColorSilver,
}

func tcellStyle(style quill.Style) tc.Style {
	return tc.StyleDefault.
		Foreground(colors[style.Foreground]).
		Background(colors[style.Background]).
		Reverse(style.Reverse)
}
