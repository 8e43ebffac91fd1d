//go:build darwin && cgo

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
package cocoa

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <stdint.h>

extern void goQuillPaint(uintptr_t handle);
extern void goQuillKey(uintptr_t handle, unsigned short keyCode, char *chars, char *bare, unsigned long flags);
extern void goQuillMouse(uintptr_t handle, int down, int button, double x, double y, double height, unsigned long flags);
extern void goQuillResize(uintptr_t handle, int width, int height);
extern void goQuillClose(uintptr_t handle);
extern void goQuillWake(uintptr_t handle);

@interface QuillView : NSView
@property uintptr_t handle;
@end

@implementation QuillView
- (BOOL)acceptsFirstResponder { return YES; }
- (void)drawRect:(NSRect)rect { goQuillPaint(self.handle); }
- (void)keyDown:(NSEvent *)event {
	goQuillKey(self.handle, event.keyCode,
		(char *)[event.characters UTF8String],
		(char *)[event.charactersIgnoringModifiers UTF8String],
		(unsigned long)event.modifierFlags);
}
- (void)mouse:(NSEvent *)event down:(int)down button:(int)button {
	NSPoint p = [self convertPoint:event.locationInWindow fromView:nil];
	goQuillMouse(self.handle, down, button, p.x, p.y, self.bounds.size.height,
		(unsigned long)event.modifierFlags);
}
- (void)mouseDown:(NSEvent *)event { [self mouse:event down:1 button:1]; }
- (void)mouseUp:(NSEvent *)event { [self mouse:event down:0 button:1]; }
- (void)otherMouseDown:(NSEvent *)event { [self mouse:event down:1 button:2]; }
- (void)otherMouseUp:(NSEvent *)event { [self mouse:event down:0 button:2]; }
- (void)rightMouseDown:(NSEvent *)event { [self mouse:event down:1 button:3]; }
- (void)rightMouseUp:(NSEvent *)event { [self mouse:event down:0 button:3]; }
@end

@interface QuillWindow : NSWindow <NSWindowDelegate>
@property uintptr_t handle;
@end

@implementation QuillWindow
- (BOOL)windowShouldClose:(NSWindow *)sender {
	goQuillClose(self.handle);
	return NO;
}
- (void)windowDidResize:(NSNotification *)note {
	NSSize size = self.contentView.bounds.size;
	goQuillResize(self.handle, (int)size.width, (int)size.height);
}
@end

static void *quill_create_window(int width, int height, uintptr_t handle) {
	@autoreleasepool {
		[NSApplication sharedApplication];
		[NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];

		NSRect frame = NSMakeRect(100, 100, width, height);
		QuillWindow *window = [[QuillWindow alloc] initWithContentRect:frame
			styleMask:NSWindowStyleMaskTitled | NSWindowStyleMaskClosable |
				NSWindowStyleMaskMiniaturizable | NSWindowStyleMaskResizable
			backing:NSBackingStoreBuffered
			defer:NO];
		if (window == nil) {
			return NULL;
		}
		window.handle = handle;
		window.delegate = window;
		window.releasedWhenClosed = NO;
		window.title = @"quill";

		QuillView *view = [[QuillView alloc] initWithFrame:frame];
		view.handle = handle;
		window.contentView = view;
		[window makeFirstResponder:view];
		[window makeKeyAndOrderFront:nil];
		[NSApp activateIgnoringOtherApps:YES];
		return (__bridge_retained void *)window;
	}
}

static void quill_run(void) {
	@autoreleasepool {
		[NSApp run];
	}
}

// quill_stop ends [NSApp run]. run only notices after one more event, so an
// application-defined event is posted behind the stop request.
static void quill_stop(void) {
	dispatch_async(dispatch_get_main_queue(), ^{
		[NSApp stop:nil];
		NSEvent *event = [NSEvent otherEventWithType:NSEventTypeApplicationDefined
			location:NSZeroPoint modifierFlags:0 timestamp:0 windowNumber:0
			context:nil subtype:0 data1:0 data2:0];
		[NSApp postEvent:event atStart:NO];
	});
}

static void quill_wake(uintptr_t handle) {
	dispatch_async(dispatch_get_main_queue(), ^{
		goQuillWake(handle);
	});
}

static void quill_close_window(void *w) {
	QuillWindow *window = (__bridge_transfer QuillWindow *)w;
	window.delegate = nil;
	[window close];
}
*/
import "C"

import (
	"context"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const Name = "cocoa"

// Platform opens one NSWindow. CreateWindow and PumpEvents must be called
// from the main goroutine, which init locks to the main thread.
type Platform struct {
	opts platform.Options

	mu      sync.Mutex
	window  unsafe.Pointer
	handle  platform.Handle
	size    quill.Size
	grid    *platform.TextGrid
	pending []quill.Event

	// used on the main thread only
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
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.window != nil {
		return quill.NewWindowCreationError(Name, "NSWindow", platform.ErrWindowExists)
	}
	h := platform.Windows.Reserve(p)
	window := C.quill_create_window(C.int(width), C.int(height), C.uintptr_t(h))
	if window == nil {
		platform.Windows.Unregister(h)
		return quill.NewWindowCreationError(Name, "NSWindow", errors.New("initWithContentRect returned nil"))
	}
	p.window = window
	p.handle = h
	p.size = quill.Size{Width: width, Height: height}
	p.grid = platform.GridForWindow(width, height)
	p.opts.Logger.Debug("window created", "backend", Name, "width", width, "height", height)
	return nil
}

// Deliver queues an event for the main thread.
func (p *Platform) Deliver(h platform.Handle, ev quill.Event) {
	p.mu.Lock()
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
	C.quill_wake(C.uintptr_t(h))
}

func (p *Platform) PumpEvents(ctx context.Context, v quill.View) error {
	p.mu.Lock()
	open := p.window != nil
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
			C.quill_stop()
		case <-stop:
		}
	}()

	p.d = platform.NewDispatcher(v, p.opts)
	defer func() { p.d = nil }()
	C.quill_run()
	if !p.d.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Platform) dispatch(ev quill.Event) {
	if p.d == nil || p.d.Done() {
		return
	}
	if ev.Kind == quill.EventResize {
		p.grid.Resize(max(ev.Col, 1), max(ev.Row, 1))
	}
	if p.d.Dispatch(ev) {
		C.quill_stop()
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
	if p.window == nil {
		return nil
	}
	return p.grid
}

// Close closes the window. It must run on the main thread.
func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.window == nil {
		return nil
	}
	platform.Windows.Unregister(p.handle)
	C.quill_close_window(p.window)
	p.window = nil
	p.pending = nil
	p.opts.Logger.Debug("window closed", "backend", Name)
	return nil
}
