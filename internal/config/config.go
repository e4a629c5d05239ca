/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: defaults, then the YAML file,
// then CAGE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cagekit/internal/cage"
	applog "cagekit/internal/log"
	"cagekit/internal/overlay"
)

// CageConfig tunes hit-testing and snapping. Thresholds are screen pixels.
type CageConfig struct {
	SelectThreshold float64 `yaml:"select_threshold"`
	RotateThreshold float64 `yaml:"rotate_threshold"`
	SnapAngle       float64 `yaml:"snap_angle"`
	RotateEnabled   bool    `yaml:"rotate_enabled"`
}

type OverlayConfig struct {
	Background   string  `yaml:"background"`
	Outline      string  `yaml:"outline"`
	HandleFill   string  `yaml:"handle_fill"`
	HandleStroke string  `yaml:"handle_stroke"`
	Selected     string  `yaml:"selected"`
	Content      string  `yaml:"content"`
	HandleSize   float64 `yaml:"handle_size"`
	LineWidth    float64 `yaml:"line_width"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AppConfig is the user-editable configuration.
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Cage          CageConfig    `yaml:"cage"`
	Overlay       OverlayConfig `yaml:"overlay"`
	Logging       LoggingConfig `yaml:"logging"`
	Journal       JournalConfig `yaml:"journal"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	st := overlay.DefaultStyle()
	return AppConfig{
		ConfigVersion: 1,
		Cage: CageConfig{
			SelectThreshold: cage.DefaultSelectThreshold,
			RotateThreshold: cage.DefaultRotateThreshold,
			SnapAngle:       cage.DefaultSnapAngle,
			RotateEnabled:   true,
		},
		Overlay: OverlayConfig{
			Background:   st.Background,
			Outline:      st.Outline,
			HandleFill:   st.HandleFill,
			HandleStroke: st.HandleStroke,
			Selected:     st.Selected,
			Content:      st.Content,
			HandleSize:   st.HandleSize,
			LineWidth:    st.LineWidth,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Journal: JournalConfig{Enabled: false, Path: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile      = "CAGE_CONFIG"
	EnvSelectThreshold = "CAGE_SELECT_THRESHOLD"
	EnvRotateThreshold = "CAGE_ROTATE_THRESHOLD"
	EnvSnapAngle       = "CAGE_SNAP_ANGLE"
	EnvRotateEnabled   = "CAGE_ROTATE_ENABLED"
	EnvJournalEnabled  = "CAGE_JOURNAL_ENABLED"
	EnvJournalPath     = "CAGE_JOURNAL_PATH"
	EnvLogLevel        = "CAGE_LOG_LEVEL"
	EnvLogFormat       = "CAGE_LOG_FORMAT"
	EnvLogSource       = "CAGE_LOG_SOURCE"
	EnvLogFile         = "CAGE_LOG_FILE"
)

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "cagekit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "cagekit")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "cagekit")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "cagekit")
		}
	}
	if base == "" || base == "cagekit" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the config file path: CAGE_CONFIG if set, else config.yaml in Dir.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path (ConfigPath when empty). A missing file is not
// an error; a malformed one is.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, data)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if cfg.Journal.Path == "" {
		if dir, err := Dir(); err == nil {
			cfg.Journal.Path = filepath.Join(dir, "journal.sqlite")
		}
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML to path (ConfigPath when empty).
func Save(cfg AppConfig, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects values the cage cannot work with.
func (c AppConfig) Validate() error {
	if c.Cage.SelectThreshold <= 0 || c.Cage.RotateThreshold <= 0 {
		return fmt.Errorf("cage thresholds must be positive (select=%g rotate=%g)", c.Cage.SelectThreshold, c.Cage.RotateThreshold)
	}
	if c.Cage.SnapAngle <= 0 || c.Cage.SnapAngle > 180 {
		return fmt.Errorf("cage snap_angle must be in (0, 180], got %g", c.Cage.SnapAngle)
	}
	if err := c.OverlayStyle().Validate(); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}

// Thresholds converts the cage section for cage.NewBoundingBoxManager.
func (c AppConfig) Thresholds() cage.Thresholds {
	return cage.Thresholds{Select: c.Cage.SelectThreshold, Rotate: c.Cage.RotateThreshold, SnapAngle: c.Cage.SnapAngle}
}

// OverlayStyle converts the overlay section.
func (c AppConfig) OverlayStyle() overlay.Style {
	o := c.Overlay
	return overlay.Style{
		Background:   o.Background,
		Outline:      o.Outline,
		HandleFill:   o.HandleFill,
		HandleStroke: o.HandleStroke,
		Selected:     o.Selected,
		Content:      o.Content,
		HandleSize:   o.HandleSize,
		LineWidth:    o.LineWidth,
	}
}

// LogOptions converts the logging section.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

// mergeInto copies set fields of src over dst. Booleans are taken from the
// file only when their key is present in raw.
func mergeInto(dst *AppConfig, src *AppConfig, raw []byte) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	pos := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	str := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	pos(&dst.Cage.SelectThreshold, src.Cage.SelectThreshold)
	pos(&dst.Cage.RotateThreshold, src.Cage.RotateThreshold)
	pos(&dst.Cage.SnapAngle, src.Cage.SnapAngle)

	str(&dst.Overlay.Background, src.Overlay.Background)
	str(&dst.Overlay.Outline, src.Overlay.Outline)
	str(&dst.Overlay.HandleFill, src.Overlay.HandleFill)
	str(&dst.Overlay.HandleStroke, src.Overlay.HandleStroke)
	str(&dst.Overlay.Selected, src.Overlay.Selected)
	str(&dst.Overlay.Content, src.Overlay.Content)
	pos(&dst.Overlay.HandleSize, src.Overlay.HandleSize)
	pos(&dst.Overlay.LineWidth, src.Overlay.LineWidth)

	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	str(&dst.Logging.File, src.Logging.File)

	str(&dst.Journal.Path, src.Journal.Path)
	dst.Journal.Enabled = src.Journal.Enabled

	// rotate_enabled defaults to true, so an absent key must not clear it
	var keys struct {
		Cage map[string]any `yaml:"cage"`
	}
	if yaml.Unmarshal(raw, &keys) == nil {
		if _, ok := keys.Cage["rotate_enabled"]; ok {
			dst.Cage.RotateEnabled = src.Cage.RotateEnabled
		}
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	float := func(key string, dst *float64) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	float(EnvSelectThreshold, &cfg.Cage.SelectThreshold)
	float(EnvRotateThreshold, &cfg.Cage.RotateThreshold)
	float(EnvSnapAngle, &cfg.Cage.SnapAngle)
	if v := strings.TrimSpace(os.Getenv(EnvRotateEnabled)); v != "" {
		cfg.Cage.RotateEnabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalEnabled)); v != "" {
		cfg.Journal.Enabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalPath)); v != "" {
		cfg.Journal.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"cage.select_threshold": EnvSelectThreshold,
		"cage.rotate_threshold": EnvRotateThreshold,
		"cage.snap_angle":       EnvSnapAngle,
		"cage.rotate_enabled":   EnvRotateEnabled,
		"journal.enabled":       EnvJournalEnabled,
		"journal.path":          EnvJournalPath,
		"logging.level":         EnvLogLevel,
		"logging.format":        EnvLogFormat,
		"logging.source":        EnvLogSource,
		"logging.file":          EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
