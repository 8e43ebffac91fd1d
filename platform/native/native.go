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
// Package native selects the windowing backend of the operating system the
// program was built for.
package native

import (
	"github.com/cockroachdb/errors"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

// ErrUnsupported is returned when no native backend exists for this build.
var ErrUnsupported = errors.New("no native windowing backend for this platform")

// New returns the native backend.
func New(opts platform.Options) (quill.Platform, error) {
	return newPlatform(opts)
}

// Name reports which backend New returns, or "" when there is none.
func Name() string {
	return backendName
}
