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
package native

import (
	"github.com/timburks/quill/platform"
	"github.com/timburks/quill/platform/x11"
	quill "github.com/timburks/quill/types"
)

const backendName = x11.Name

func newPlatform(opts platform.Options) (quill.Platform, error) {
	return x11.New(opts), nil
}
