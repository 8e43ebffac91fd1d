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
package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitUser    = 1
	ExitSystem  = 2
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Err  error
	Code int
}

func userError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitUser}
}

func systemError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by the root command to an exit code.
// Errors cobra reports before running, such as unknown flags, are usage
// errors.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}

func printError(w io.Writer, err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("Error:")
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}
