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
package config

import (
	"github.com/cockroachdb/errors"

	"github.com/timburks/quill/internal/logging"
	"github.com/timburks/quill/platform"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendNative, BackendTermbox, BackendTcell, BackendHeadless:
	default:
		errs = append(errs, errors.Newf("unknown backend %q", c.Backend))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, errors.Newf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if _, err := platform.ParsePolicy(c.ExitOn); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Mark(errors.Join(errs...), ErrInvalidConfig)
}
