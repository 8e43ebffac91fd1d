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
// Package commands implements the quill command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timburks/quill/commander"
	"github.com/timburks/quill/editor"
	"github.com/timburks/quill/internal/config"
	"github.com/timburks/quill/internal/logging"
	"github.com/timburks/quill/platform"
	"github.com/timburks/quill/platform/headless"
	"github.com/timburks/quill/platform/native"
	tcellplatform "github.com/timburks/quill/platform/tcell"
	termboxplatform "github.com/timburks/quill/platform/termbox"
	quill "github.com/timburks/quill/types"
	"github.com/timburks/quill/window"
)

const version = "0.1.0"

type options struct {
	configPath  string
	eval        []string
	quietEvents bool
	print       bool
}

// NewRootCmd builds the quill command. Flags are bound to the config keys of
// the same name.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	v := config.New()

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "A small editor with a portable windowing layer",
		Long: `quill opens one editor window and pumps its events until the window is
closed, the editor asks to quit (Ctrl-Q), or the process is interrupted.

The window comes from the native windowing system (Win32, Cocoa or X11),
from the terminal (termbox or tcell), or from nowhere at all (headless,
which types whatever arrives on standard input).`,
		Example: `  # Open a native window
  quill

  # Edit in the terminal
  quill --backend tcell

  # Legacy behaviour: stop after the first key press
  quill --exit-on first-key

  # Scripted run
  printf 'hello' | quill --backend headless --print`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts)
		},
	}
	cmd.SetVersionTemplate("quill version {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./quill.yaml, then $XDG_CONFIG_HOME/quill/quill.yaml)")
	flags.String("backend", config.BackendNative, "window backend: native, termbox, tcell, headless")
	flags.Int("width", 800, "window width in pixels")
	flags.Int("height", 600, "window height in pixels")
	flags.String("exit-on", "close", "termination policy: close, first-key")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.String("log-file", "", "write logs to this file")
	flags.StringArrayVar(&opts.eval, "eval", nil, "lisp expression to evaluate against the document before the window opens (repeatable)")
	flags.BoolVar(&opts.quietEvents, "quiet-events", false, "do not print a line for each event")
	flags.BoolVar(&opts.print, "print", false, "print the document when the window closes")

	for key, flag := range map[string]string{
		"backend":    "backend",
		"width":      "width",
		"height":     "height",
		"exit_on":    "exit-on",
		"log_level":  "log-level",
		"log_format": "log-format",
		"log_file":   "log-file",
	} {
		// the flag names are fixed, so binding cannot fail
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func run(cmd *cobra.Command, v *viper.Viper, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return userError(err)
	}
	if opts.quietEvents {
		cfg.TraceEvents = false
	}
	if err := cfg.Validate(); err != nil {
		return userError(err)
	}

	logger, closeLog, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return systemError(err)
	}
	defer closeLog()

	doc := editor.NewBuffer()
	if err := prepare(doc, cfg, opts, logger); err != nil {
		return userError(err)
	}

	policy, _ := platform.ParsePolicy(cfg.ExitOn)
	popts := platform.Options{Policy: policy, Logger: logger, Diagnostics: diagnostics(cfg, cmd.OutOrStdout())}
	if cfg.TraceEvents && popts.Diagnostics == nil {
		logger.Info("event trace disabled while the terminal is the window", "backend", cfg.Backend)
	}
	p, err := newPlatform(cfg.Backend, popts)
	if err != nil {
		return systemError(err)
	}
	defer p.Close()

	logger.Info("creating window", "backend", p.Name(), "width", cfg.Width, "height", cfg.Height,
		"exit_on", policy.String())
	if err := p.CreateWindow(cfg.Width, cfg.Height); err != nil {
		return systemError(err)
	}
	pumpCtx, stopFeed := context.WithCancel(ctx)
	if hp, ok := p.(*headless.Platform); ok {
		go hp.Feed(pumpCtx, cmd.InOrStdin())
	}

	w := window.NewWindow(doc, p.Surface())
	err = p.PumpEvents(pumpCtx, w)
	stopFeed()
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("interrupted")
	default:
		return systemError(errors.Wrap(err, "pumping events"))
	}
	logger.Debug("window closed", "lines", doc.LineCount())

	if opts.print {
		fmt.Fprintln(cmd.OutOrStdout(), doc.Text())
	}
	return nil
}

// diagnostics is where event labels are written. Terminal backends draw on
// stdout, so they get none; the events still reach the debug log.
func diagnostics(cfg *config.Config, stdout io.Writer) io.Writer {
	if !cfg.TraceEvents || cfg.TerminalBackend() {
		return nil
	}
	return stdout
}

// prepare runs the init script and --eval expressions against the document.
func prepare(doc quill.Document, cfg *config.Config, opts *options, logger *slog.Logger) error {
	eval := commander.NewEvaluator(doc)
	if cfg.InitScript != "" {
		result, err := eval.EvalFile(cfg.InitScript)
		if err != nil {
			return errors.Wrap(err, "init script")
		}
		logger.Debug("init script evaluated", "path", cfg.InitScript, "result", result)
	}
	for _, expr := range opts.eval {
		result, err := eval.Eval(expr)
		if err != nil {
			return errors.Wrapf(err, "evaluating %s", expr)
		}
		logger.Info("evaluated", "expr", expr, "result", result)
	}
	return nil
}

func setupLogging(cfg *config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	level, _ := logging.LevelFromString(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)

	out := stderr
	closeLog := func() {}
	if path := cfg.LogPath(); path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeLog = func() { f.Close() }
	}
	logger := logging.New(logging.Config{Level: level, Format: format, Output: out})
	slog.SetDefault(logger)
	return logger, closeLog, nil
}

func newPlatform(backend string, opts platform.Options) (quill.Platform, error) {
	switch backend {
	case config.BackendHeadless:
		return headless.New(opts), nil
	case config.BackendTermbox:
		return termboxplatform.New(opts), nil
	case config.BackendTcell:
		return tcellplatform.New(opts), nil
	default:
		return native.New(opts)
	}
}
