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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/quill/mocks"
	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

func TestCreateAndClose(t *testing.T) {
	var diag bytes.Buffer
	view := mocks.NewView(t)
	view.On("Draw").Return(nil).Maybe()

	p := New(platform.Options{Diagnostics: &diag})
	require.NoError(t, p.CreateWindow(320, 240))
	h := platform.Handle(p.window())
	_, ok := platform.Windows.Lookup(h)
	require.True(t, ok)
	assert.Equal(t, quill.Size{Width: 320, Height: 240}, p.Size())

	p.Deliver(h, quill.Event{Kind: quill.EventClose})
	require.NoError(t, p.PumpEvents(context.Background(), view))
	assert.Contains(t, diag.String(), "Close event")

	_, ok = platform.Windows.Lookup(h)
	assert.False(t, ok)
	assert.Nil(t, p.Surface())
}

func TestFirstPaintReachesView(t *testing.T) {
	var diag bytes.Buffer
	view := mocks.NewView(t)
	view.On("Draw").Return(nil)

	p := New(platform.Options{Diagnostics: &diag})
	require.NoError(t, p.CreateWindow(320, 240))
	p.Deliver(platform.Handle(p.window()), quill.Event{Kind: quill.EventClose})
	require.NoError(t, p.PumpEvents(context.Background(), view))

	assert.True(t, strings.HasPrefix(diag.String(), "Paint event\n"), diag.String())
	assert.True(t, strings.HasSuffix(diag.String(), "Close event\n"), diag.String())
	view.AssertCalled(t, "Draw")
}

func TestFirstKeyPolicy(t *testing.T) {
	view := mocks.NewView(t)
	view.On("Draw").Return(nil).Maybe()
	view.On("HandleInput", quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyEnter}).Return(nil).Once()

	p := New(platform.Options{Policy: platform.ExitOnFirstKey})
	require.NoError(t, p.CreateWindow(320, 240))
	h := platform.Handle(p.window())
	p.Deliver(h, quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyEnter})
	p.Deliver(h, quill.Event{Kind: quill.EventKeyDown, Key: quill.KeyEsc})
	require.NoError(t, p.PumpEvents(context.Background(), view))
}

func TestCancel(t *testing.T) {
	view := mocks.NewView(t)
	view.On("Draw").Return(nil).Maybe()

	p := New(platform.Options{})
	require.NoError(t, p.CreateWindow(320, 240))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.PumpEvents(ctx, view), context.DeadlineExceeded)
}

func TestBadSize(t *testing.T) {
	p := New(platform.Options{})
	assert.ErrorIs(t, p.CreateWindow(0, 0), quill.ErrWindowCreation)
	assert.ErrorIs(t, p.PumpEvents(context.Background(), nil), quill.ErrNoWindow)
}
