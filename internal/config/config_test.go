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
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with private XDG homes.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(dir)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Backend:     BackendNative,
		Width:       800,
		Height:      600,
		ExitOn:      "close",
		LogLevel:    "info",
		LogFormat:   "text",
		TraceEvents: true,
	}, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "", cfg.LogPath())
}

func TestFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.yaml"),
		[]byte("backend: headless\nwidth: 1024\nexit_on: first-key\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, BackendHeadless, cfg.Backend)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "first-key", cfg.ExitOn)
}

func TestFileInConfigHome(t *testing.T) {
	dir := isolate(t)
	home := filepath.Join(dir, "config", AppName)
	require.NoError(t, os.MkdirAll(home, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "quill.yaml"), []byte("log_level: debug\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("QUILL_HEIGHT", "480")
	t.Setenv("QUILL_TRACE_EVENTS", "false")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Height)
	assert.False(t, cfg.TraceEvents)
}

func TestExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: tcell\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, BackendTcell, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "state", AppName, "quill.log"), cfg.LogPath())

	_, err = Load(New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.yaml"), []byte("width: [\n"), 0o644))
	_, err := Load(New(), "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Backend: BackendTermbox, Width: 1, Height: 1, ExitOn: "close", LogLevel: "warn", LogFormat: "json"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"backend", func(c *Config) { c.Backend = "gtk" }, `unknown backend "gtk"`},
		{"width", func(c *Config) { c.Width = 0 }, "window size must be positive"},
		{"height", func(c *Config) { c.Height = -5 }, "window size must be positive"},
		{"policy", func(c *Config) { c.ExitOn = "never" }, "unknown termination policy"},
		{"level", func(c *Config) { c.LogLevel = "trace" }, "unknown log level"},
		{"format", func(c *Config) { c.LogFormat = "xml" }, "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLogPath(t *testing.T) {
	cfg := Config{Backend: BackendHeadless}
	assert.Equal(t, "", cfg.LogPath())
	cfg.LogFile = "/tmp/q.log"
	assert.Equal(t, "/tmp/q.log", cfg.LogPath())
}
