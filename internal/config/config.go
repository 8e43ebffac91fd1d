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
// Package config loads quill settings from flags, environment and a YAML
// file using Viper.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const AppName = "quill"

// Backends that can be selected with the backend key.
const (
	BackendNative   = "native"
	BackendTermbox  = "termbox"
	BackendTcell    = "tcell"
	BackendHeadless = "headless"
)

type Config struct {
	Backend     string `mapstructure:"backend"`
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	ExitOn      string `mapstructure:"exit_on"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	LogFile     string `mapstructure:"log_file"`
	TraceEvents bool   `mapstructure:"trace_events"`
	InitScript  string `mapstructure:"init_script"`
}

// New returns a Viper instance with quill's search paths, environment
// prefix and defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	v.SetDefault("backend", BackendNative)
	v.SetDefault("width", 800)
	v.SetDefault("height", 600)
	v.SetDefault("exit_on", "close")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("trace_events", true)
	v.SetDefault("init_script", "")
	return v
}

// Load reads the config file into a Config. An explicit path must exist;
// when path is empty a missing file just leaves the defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case path != "":
			return nil, errors.Wrapf(err, "reading config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// LogPath is where logs are written, or "" for stderr. Terminal backends
// own the screen, so their logs go to the XDG state directory by default.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if c.TerminalBackend() {
		return filepath.Join(xdg.StateHome, AppName, AppName+".log")
	}
	return ""
}

func (c *Config) TerminalBackend() bool {
	return c.Backend == BackendTermbox || c.Backend == BackendTcell
}
