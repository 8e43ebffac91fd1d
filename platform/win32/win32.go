//go:build windows

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
package win32

import (
	"context"
	"runtime"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "win32"

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procInvalidateRect   = user32.NewProc("InvalidateRect")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")
	procPostMessageW     = user32.NewProc("PostMessageW")
	procLoadCursorW      = user32.NewProc("LoadCursorW")
	procGetKeyState      = user32.NewProc("GetKeyState")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	csHRedraw          = 0x0002
	csVRedraw          = 0x0001
	wsOverlappedWindow = 0x00CF0000
	cwUseDefault       = 0x80000000
	swShow             = 5
	idcArrow           = 32512

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12

	errorClassAlreadyExists = 1410
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type point struct {
	X, Y int32
}

type msg struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

var (
	classOnce sync.Once
	classErr  error
	className *uint16
	instance  windows.Handle
)

// registerClass registers the window class shared by all windows.
func registerClass() error {
	classOnce.Do(func() {
		h, _, err := procGetModuleHandleW.Call(0)
		if h == 0 {
			classErr = errors.Wrap(err, "GetModuleHandle")
			return
		}
		instance = windows.Handle(h)
		className, classErr = windows.UTF16PtrFromString("QuillWindowClass")
		if classErr != nil {
			return
		}
		cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
		wc := wndClassEx{
			Style:     csHRedraw | csVRedraw,
			WndProc:   windows.NewCallback(wndProc),
			Instance:  instance,
			Cursor:    windows.Handle(cursor),
			ClassName: className,
		}
		wc.Size = uint32(unsafe.Sizeof(wc))
		atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 && err != windows.Errno(errorClassAlreadyExists) {
			classErr = errors.Wrap(err, "RegisterClassEx")
		}
	})
	return classErr
}

// Platform opens one Win32 window. CreateWindow and PumpEvents must be
// called from the same goroutine; it is locked to its OS thread.
type Platform struct {
	opts platform.Options

	mu      sync.Mutex
	hwnd    windows.HWND
	size    quill.Size
	grid    *platform.TextGrid
	pending []quill.Event

	// set while pumping; only touched on the window thread
	d *platform.Dispatcher
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
	if p.window() != 0 {
		return quill.NewWindowCreationError(Name, "CreateWindowEx", platform.ErrWindowExists)
	}
	runtime.LockOSThread()
	if err := registerClass(); err != nil {
		runtime.UnlockOSThread()
		return quill.NewWindowCreationError(Name, "RegisterClassEx", err)
	}
	title, _ := windows.UTF16PtrFromString("quill")
	h, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow,
		cwUseDefault, cwUseDefault,
		uintptr(width), uintptr(height),
		0, 0, uintptr(instance), 0)
	if h == 0 {
		runtime.UnlockOSThread()
		return quill.NewWindowCreationError(Name, "CreateWindowEx", err)
	}
	hwnd := windows.HWND(h)

	p.mu.Lock()
	p.hwnd = hwnd
	p.size = quill.Size{Width: width, Height: height}
	p.grid = platform.GridForWindow(width, height)
	p.mu.Unlock()
	platform.Windows.Register(platform.Handle(hwnd), p)

	// the first WM_PAINT waits for PumpEvents, which has the View
	procShowWindow.Call(h, swShow)
	p.opts.Logger.Debug("window created", "backend", Name, "hwnd", h, "width", width, "height", height)
	return nil
}

func (p *Platform) window() windows.HWND {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hwnd
}

// Deliver queues an event for the window thread and wakes its loop.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.mu.Lock()
	p.pending = append(p.pending, ev)
	hwnd := p.hwnd
	p.mu.Unlock()
	if hwnd != 0 {
		procPostMessageW.Call(uintptr(hwnd), wmWake, 0, 0)
	}
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	hwnd := p.window()
	if hwnd == 0 {
		return quill.ErrNoWindow
	}
	defer p.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			procPostMessageW.Call(uintptr(hwnd), wmWake, 0, 0)
		case <-stop:
		}
	}()

	p.d = platform.NewDispatcher(v, p.opts)
	defer func() { p.d = nil }()

	// ShowWindow may have painted before there was a dispatcher, so paint
	// again now that there is one. UpdateWindow sends WM_PAINT directly.
	procInvalidateRect.Call(uintptr(hwnd), 0, 0)
	procUpdateWindow.Call(uintptr(hwnd))

	var m msg
	for !p.d.Done() {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return errors.Wrap(err, "GetMessage")
		case 0:
			// WM_QUIT
			return nil
		}
		if m.Message == wmWake {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, ev := range p.takePending() {
				p.dispatch(ev)
			}
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
	return nil
}

func (p *Platform) takePending() []quill.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.pending
	p.pending = nil
	return events
}

func (p *Platform) dispatch(ev quill.Event) {
	if p.d == nil {
		return
	}
	if ev.Kind == quill.EventResize {
		p.grid.Resize(max(ev.Col, 1), max(ev.Row, 1))
	}
	p.d.Dispatch(ev)
}

func keyDown(vk uintptr) bool {
	r, _, _ := procGetKeyState.Call(vk)
	return int16(r) < 0
}

func modifiers() quill.Modifier {
	var mods quill.Modifier
	if keyDown(vkShift) {
		mods |= quill.ModShift
	}
	if keyDown(vkControl) {
		mods |= quill.ModCtrl
	}
	if keyDown(vkMenu) {
		mods |= quill.ModAlt
	}
	return mods
}

func wndProc(hwnd, message, wparam, lparam uintptr) uintptr {
	sink, _ := platform.Windows.Lookup(platform.Handle(hwnd))
	p, ok := sink.(*Platform)
	if !ok {
		r, _, _ := procDefWindowProcW.Call(hwnd, message, wparam, lparam)
		return r
	}
	if ev, ok := translate(uint32(message), wparam, lparam, modifiers()); ok {
		p.dispatch(ev)
		if ev.Kind == quill.EventClose {
			// destroyed by Close
			return 0
		}
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, message, wparam, lparam)
	return r
}

func (p *Platform) Size() quill.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

func (p *Platform) Surface() quill.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hwnd == 0 {
		return nil
	}
	return p.grid
}

// Close destroys the window. It must run on the window thread.
func (p *Platform) Close() error {
	p.mu.Lock()
	hwnd := p.hwnd
	p.hwnd = 0
	p.pending = nil
	p.mu.Unlock()
	if hwnd == 0 {
		return nil
	}
	platform.Windows.Unregister(platform.Handle(hwnd))
	defer runtime.UnlockOSThread()
	if r, _, err := procDestroyWindow.Call(uintptr(hwnd)); r == 0 {
		return errors.Wrap(err, "DestroyWindow")
	}
	p.opts.Logger.Debug("window destroyed", "backend", Name)
	return nil
}
