//go:build !windows && !(darwin && cgo) && !(linux && cgo)

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
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/timburks/quill/platform"
	quill "github.com/timburks/quill/types"
)

const backendName = ""

func newPlatform(opts platform.Options) (quill.Platform, error) {
	return nil, errors.Wrapf(ErrUnsupported, "%s/%s (cgo may be disabled)", runtime.GOOS, runtime.GOARCH)
}
