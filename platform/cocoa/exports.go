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

// Callbacks from the Objective-C side. A file with exports may only hold
// declarations in its preamble, so the window code is kept in cocoa.go.

/*
#include <stdint.h>
*/
import "C"

import (
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

func lookup(handle C.uintptr_t) *Platform {
	sink, _ := platform.Windows.Lookup(platform.Handle(handle))
	p, _ := sink.(*Platform)
	return p
}

//export goQuillPaint
func goQuillPaint(handle C.uintptr_t) {
	if p := lookup(handle); p != nil {
		p.dispatch(quill.Event{Kind: quill.EventPaint})
	}
}

//export goQuillKey
func goQuillKey(handle C.uintptr_t, keyCode C.ushort, chars, bare *C.char, flags C.ulong) {
	if p := lookup(handle); p != nil {
		p.dispatch(keyEvent(uint16(keyCode), C.GoString(chars), C.GoString(bare), uint64(flags)))
	}
}

//export goQuillMouse
func goQuillMouse(handle C.uintptr_t, down, button C.int, x, y, height C.double, flags C.ulong) {
	if p := lookup(handle); p != nil {
		p.dispatch(mouseEvent(down != 0, int(button), float64(x), float64(y), float64(height), uint64(flags)))
	}
}

//export goQuillResize
func goQuillResize(handle C.uintptr_t, width, height C.int) {
	if p := lookup(handle); p != nil {
		p.dispatch(resizeEvent(int(width), int(height)))
	}
}

//export goQuillClose
func goQuillClose(handle C.uintptr_t) {
	if p := lookup(handle); p != nil {
		p.dispatch(quill.Event{Kind: quill.EventClose})
	}
}

//export goQuillWake
func goQuillWake(handle C.uintptr_t) {
	if p := lookup(handle); p != nil {
		for _, ev := range p.takePending() {
			p.dispatch(ev)
		}
	}
}
