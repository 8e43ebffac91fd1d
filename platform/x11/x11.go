//go:build linux && cgo

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
package x11

/*
#cgo LDFLAGS: -lX11
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <stdlib.h>
#include <string.h>

enum {
	QUILL_NONE = 0,
	QUILL_EXPOSE,
	QUILL_KEY,
	QUILL_BUTTON_PRESS,
	QUILL_BUTTON_RELEASE,
	QUILL_CONFIGURE,
	QUILL_CLOSE,
	QUILL_WAKE,
};

typedef struct {
	int kind;
	int x, y;
	int width, height;
	int button;
	unsigned int state;
	unsigned long keysym;
	char text[16];
} quill_event;

static Window quill_create_window(Display *d, int width, int height, Atom *wm_delete) {
	int screen = DefaultScreen(d);
	Window w = XCreateSimpleWindow(d, RootWindow(d, screen), 10, 10, width, height, 1,
		BlackPixel(d, screen), WhitePixel(d, screen));
	if (w == None) {
		return None;
	}
	XStoreName(d, w, "quill");
	XSelectInput(d, w, ExposureMask | KeyPressMask | ButtonPressMask | ButtonReleaseMask |
		StructureNotifyMask);
	*wm_delete = XInternAtom(d, "WM_DELETE_WINDOW", False);
	XSetWMProtocols(d, w, wm_delete, 1);
	XMapWindow(d, w);
	XFlush(d);
	return w;
}

static void quill_next_event(Display *d, Atom wm_delete, Atom wake, quill_event *out) {
	XEvent ev;
	XNextEvent(d, &ev);
	memset(out, 0, sizeof(*out));
	switch (ev.type) {
	case Expose:
		if (ev.xexpose.count == 0) {
			out->kind = QUILL_EXPOSE;
		}
		break;
	case KeyPress: {
		KeySym sym = 0;
		int n = XLookupString(&ev.xkey, out->text, sizeof(out->text) - 1, &sym, NULL);
		out->text[n > 0 ? n : 0] = 0;
		out->kind = QUILL_KEY;
		out->keysym = sym;
		out->state = ev.xkey.state;
		break;
	}
	case ButtonPress:
	case ButtonRelease:
		out->kind = ev.type == ButtonPress ? QUILL_BUTTON_PRESS : QUILL_BUTTON_RELEASE;
		out->x = ev.xbutton.x;
		out->y = ev.xbutton.y;
		out->button = ev.xbutton.button;
		out->state = ev.xbutton.state;
		break;
	case ConfigureNotify:
		out->kind = QUILL_CONFIGURE;
		out->width = ev.xconfigure.width;
		out->height = ev.xconfigure.height;
		break;
	case ClientMessage:
		if (ev.xclient.message_type == wake) {
			out->kind = QUILL_WAKE;
		} else if ((Atom)ev.xclient.data.l[0] == wm_delete) {
			out->kind = QUILL_CLOSE;
		}
		break;
	}
}

static void quill_wake(Display *d, Window w, Atom wake) {
	XEvent ev;
	memset(&ev, 0, sizeof(ev));
	ev.xclient.type = ClientMessage;
	ev.xclient.window = w;
	ev.xclient.message_type = wake;
	ev.xclient.format = 32;
	XSendEvent(d, w, False, NoEventMask, &ev);
	XFlush(d);
}
*/
import "C"

import (
	"context"
	"os"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "x11"

var initThreads sync.Once

// Platform opens one window on the X server named by $DISPLAY.
type Platform struct {
	opts platform.Options

	mu       sync.Mutex
	display  *C.Display
	window   C.Window
	wmDelete C.Atom
	wake     C.Atom
	size     quill.Size
	grid     *platform.TextGrid
	pending  []quill.Event
}

var _ quill.Platform = (*Platform)(nil)

func New(opts platform.Options) *Platform {
	opts.Logger = opts.Log()
	return &Platform{opts: opts}
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
	if p.display != nil {
		return quill.NewWindowCreationError(Name, "XCreateSimpleWindow", platform.ErrWindowExists)
	}

	// other goroutines post wake events on the same connection
	initThreads.Do(func() { C.XInitThreads() })

	display := C.XOpenDisplay(nil)
	if display == nil {
		return quill.NewWindowCreationError(Name, "XOpenDisplay",
			errors.Newf("cannot open display %q", os.Getenv("DISPLAY")))
	}
	var wmDelete C.Atom
	window := C.quill_create_window(display, C.int(width), C.int(height), &wmDelete)
	if window == C.None {
		C.XCloseDisplay(display)
		return quill.NewWindowCreationError(Name, "XCreateSimpleWindow", errors.New("no window returned"))
	}
	name := C.CString("QUILL_WAKE")
	defer C.free(unsafe.Pointer(name))

	p.display = display
	p.window = window
	p.wmDelete = wmDelete
	p.wake = C.XInternAtom(display, name, C.False)
	p.size = quill.Size{Width: width, Height: height}
	p.grid = platform.GridForWindow(width, height)
	platform.Windows.Register(platform.Handle(window), p)
	p.opts.Logger.Debug("window created", "backend", Name, "window", uint64(window),
		"width", width, "height", height)
	return nil
}

// Deliver queues an event and wakes the event loop.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.display == nil {
		return
	}
	p.pending = append(p.pending, ev)
	C.quill_wake(p.display, p.window, p.wake)
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	p.mu.Lock()
	display, window := p.display, p.window
	wmDelete, wake := p.wmDelete, p.wake
	p.mu.Unlock()
	if display == nil {
		return quill.ErrNoWindow
	}
	defer p.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			if p.display != nil {
				C.quill_wake(display, window, wake)
			}
			p.mu.Unlock()
		case <-stop:
		}
	}()

	d := platform.NewDispatcher(v, p.opts)
	size := p.Size()
	var xev C.quill_event
	for {
		C.quill_next_event(display, wmDelete, wake, &xev)

		var ev quill.Event
		switch xev.kind {
		case C.QUILL_EXPOSE:
			ev = exposeEvent()
		case C.QUILL_KEY:
			ev = keyEvent(uint32(xev.keysym), uint32(xev.state), C.GoString(&xev.text[0]))
		case C.QUILL_BUTTON_PRESS, C.QUILL_BUTTON_RELEASE:
			var ok bool
			ev, ok = buttonEvent(xev.kind == C.QUILL_BUTTON_PRESS, int(xev.button), int(xev.x), int(xev.y), uint32(xev.state))
			if !ok {
				continue
			}
		case C.QUILL_CONFIGURE:
			w, h := int(xev.width), int(xev.height)
			if w == size.Width && h == size.Height {
				// moves also arrive as ConfigureNotify
				continue
			}
			size = quill.Size{Width: w, Height: h}
			p.grid.Resize(max(w/platform.CellWidth, 1), max(h/platform.CellHeight, 1))
			ev = resizeEvent(w, h)
		case C.QUILL_CLOSE:
			ev = quill.Event{Kind: quill.EventClose}
		case C.QUILL_WAKE:
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, ev := range p.takePending() {
				if d.Dispatch(ev) {
					return nil
				}
			}
			continue
		default:
			continue
		}
		if d.Dispatch(ev) {
			return nil
		}
	}
}

func (p *Platform) takePending() []quill.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.pending
	p.pending = nil
	return events
}

func (p *Platform) Size() quill.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

func (p *Platform) Surface() quill.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.display == nil {
		return nil
	}
	return p.grid
}

// Close destroys the window and closes the display connection.
func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.display == nil {
		return nil
	}
	platform.Windows.Unregister(platform.Handle(p.window))
	C.XDestroyWindow(p.display, p.window)
	C.XCloseDisplay(p.display)
	p.display = nil
	p.pending = nil
	p.opts.Logger.Debug("display closed", "backend", Name)
	return nil
}
