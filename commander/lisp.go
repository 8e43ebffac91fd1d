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
package commander

import (
	"log/slog"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/steelseries/golisp"

	quill "github.com/timburks/quill/types"
)

// golisp primitives are global, so they act on whichever document is being
// evaluated. Evaluations are serialized.
var (
	targetMu sync.Mutex
	target   quill.Document
)

func init() {
	golisp.MakePrimitiveFunction("doc-insert", "3", DocInsertImpl)
	golisp.MakePrimitiveFunction("doc-delete", "4", DocDeleteImpl)
	golisp.MakePrimitiveFunction("doc-text", "0", DocTextImpl)
	golisp.MakePrimitiveFunction("doc-line-count", "0", DocLineCountImpl)
	golisp.MakePrimitiveFunction("doc-line-length", "1", DocLineLengthImpl)
}

func nth(args *golisp.Data, n int) *golisp.Data {
	for i := 0; i < n; i++ {
		args = golisp.Cdr(args)
	}
	return golisp.Car(args)
}

func intArg(name string, args *golisp.Data, n int) (int, error) {
	val := nth(args, n)
	if !golisp.IntegerP(val) {
		return 0, errors.Newf("%s requires an integer argument %d", name, n+1)
	}
	return int(golisp.IntegerValue(val)), nil
}

func positionArg(name string, args *golisp.Data, n int) (quill.Position, error) {
	line, err := intArg(name, args, n)
	if err != nil {
		return quill.Position{}, err
	}
	col, err := intArg(name, args, n+1)
	if err != nil {
		return quill.Position{}, err
	}
	return quill.Position{Line: line, Column: col}, nil
}

// (doc-insert line col "text") returns the new line count.
func DocInsertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	pos, err := positionArg("doc-insert", args, 0)
	if err != nil {
		return nil, err
	}
	text := nth(args, 2)
	if !golisp.StringP(text) {
		return nil, errors.New("doc-insert requires a string argument 3")
	}
	if err := target.Insert(pos, golisp.StringValue(text)); err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(target.LineCount())), nil
}

// (doc-delete line1 col1 line2 col2) returns the new line count.
func DocDeleteImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	start, err := positionArg("doc-delete", args, 0)
	if err != nil {
		return nil, err
	}
	end, err := positionArg("doc-delete", args, 2)
	if err != nil {
		return nil, err
	}
	if err := target.Delete(start, end); err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(target.LineCount())), nil
}

func DocTextImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.StringWithValue(target.Text()), nil
}

func DocLineCountImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(target.LineCount())), nil
}

func DocLineLengthImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	line, err := intArg("doc-line-length", args, 0)
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(target.LineLength(line))), nil
}

// An Evaluator runs lisp expressions against a Document.
type Evaluator struct {
	doc quill.Document
}

func NewEvaluator(doc quill.Document) *Evaluator {
	return &Evaluator{doc: doc}
}

// Eval evaluates one expression and returns its printed value.
func (e *Evaluator) Eval(source string) (string, error) {
	targetMu.Lock()
	target = e.doc
	defer func() {
		target = nil
		targetMu.Unlock()
	}()

	value, err := golisp.ParseAndEval(source)
	if err != nil {
		slog.Debug("lisp evaluation failed", "source", source, "error", err)
		return "", errors.Wrap(err, "lisp")
	}
	result := golisp.String(value)
	slog.Debug("lisp evaluated", "source", source, "value", result)
	return result, nil
}

// EvalFile evaluates every expression in a file and returns the value of
// the last one.
func (e *Evaluator) EvalFile(filename string) (string, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading script %s", filename)
	}
	return e.Eval("(begin " + string(source) + "\n)")
}
