/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

// EditorConfig carries the editor tunables. Screen-space values are in pixels at zoom 1.
type EditorConfig struct {
	HistoryDepth    int     `yaml:"history_depth"`
	HistoryMaxBytes int     `yaml:"history_max_bytes"` // 0 disables the byte cap
	SnapTolerancePx float32 `yaml:"snap_tolerance_px"`
	GridUnit        float32 `yaml:"grid_unit"`
	PasteOffset     float32 `yaml:"paste_offset"`
	MinZoom         float32 `yaml:"min_zoom"`
	MaxZoom         float32 `yaml:"max_zoom"`
	PenHitRadius    float32 `yaml:"pen_hit_radius"`
	PenCloseRadius  float32 `yaml:"pen_close_radius"`
	DragThreshold   float32 `yaml:"drag_threshold"`
	TapThreshold    float32 `yaml:"tap_threshold"`
	CanvasWidth     float32 `yaml:"canvas_width"`
	CanvasHeight    float32 `yaml:"canvas_height"`
}

type StorageConfig struct {
	ArchivePath string `yaml:"archive_path"` // empty: next to the config file
	KeepLatest  int    `yaml:"keep_latest"`  // snapshots kept per document on prune
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Storage       StorageConfig `yaml:"storage"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor: EditorConfig{
			HistoryDepth:    50,
			SnapTolerancePx: 6,
			GridUnit:        10,
			PasteOffset:     16,
			MinZoom:         0.1,
			MaxZoom:         5,
			PenHitRadius:    8,
			PenCloseRadius:  10,
			DragThreshold:   4,
			TapThreshold:    5,
			CanvasWidth:     800,
			CanvasHeight:    600,
		},
		Storage: StorageConfig{KeepLatest: 20},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvHistoryDepth  = "GSK_HISTORY_DEPTH"
	EnvSnapTolerance = "GSK_SNAP_TOLERANCE"
	EnvGridUnit      = "GSK_GRID_UNIT"
	EnvCanvasSize    = "GSK_CANVAS_SIZE" // WxH, e.g. 1024x768
	EnvArchivePath   = "GSK_ARCHIVE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GSK_LOG_LEVEL"
	EnvLogFormat = "GSK_LOG_FORMAT"
	EnvLogSource = "GSK_LOG_SOURCE"
	EnvLogFile   = "GSK_LOG_FILE"
	// EnvConfigPath points Load/Save at a specific file.
	EnvConfigPath = "GSK_CONFIG"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GarmentSketch")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GarmentSketch")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "garmentsketch")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// ArchivePath resolves the snapshot archive location.
func (c AppConfig) ArchivePath() (string, error) {
	if p := strings.TrimSpace(c.Storage.ArchivePath); p != "" {
		return p, nil
	}
	cp, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cp), "archive.db"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A malformed file is reported but the defaults plus env overrides are still returned.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = err
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	e, s := &dst.Editor, src.Editor
	setInt(&e.HistoryDepth, s.HistoryDepth)
	if s.HistoryMaxBytes >= 0 {
		e.HistoryMaxBytes = s.HistoryMaxBytes
	}
	setF(&e.SnapTolerancePx, s.SnapTolerancePx)
	setF(&e.GridUnit, s.GridUnit)
	setF(&e.PasteOffset, s.PasteOffset)
	setF(&e.MinZoom, s.MinZoom)
	setF(&e.MaxZoom, s.MaxZoom)
	setF(&e.PenHitRadius, s.PenHitRadius)
	setF(&e.PenCloseRadius, s.PenCloseRadius)
	setF(&e.DragThreshold, s.DragThreshold)
	setF(&e.TapThreshold, s.TapThreshold)
	setF(&e.CanvasWidth, s.CanvasWidth)
	setF(&e.CanvasHeight, s.CanvasHeight)
	if e.MinZoom > e.MaxZoom {
		e.MinZoom, e.MaxZoom = e.MaxZoom, e.MinZoom
	}
	if strings.TrimSpace(src.Storage.ArchivePath) != "" {
		dst.Storage.ArchivePath = strings.TrimSpace(src.Storage.ArchivePath)
	}
	setInt(&dst.Storage.KeepLatest, src.Storage.KeepLatest)
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setF(dst *float32, v float32) {
	if v > 0 {
		*dst = v
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvHistoryDepth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Editor.HistoryDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapTolerance)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Editor.SnapTolerancePx = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvGridUnit)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Editor.GridUnit = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasSize)); v != "" {
		if w, h, ok := parseSize(v); ok {
			cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight = w, h
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvArchivePath)); v != "" {
		cfg.Storage.ArchivePath = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseSize(v string) (float32, float32, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(strings.TrimSpace(ws), 32)
	h, err2 := strconv.ParseFloat(strings.TrimSpace(hs), 32)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return float32(w), float32(h), true
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := map[string]string{
		"editor.history_depth":     EnvHistoryDepth,
		"editor.snap_tolerance_px": EnvSnapTolerance,
		"editor.grid_unit":         EnvGridUnit,
		"editor.canvas_width":      EnvCanvasSize,
		"editor.canvas_height":     EnvCanvasSize,
		"storage.archive_path":     EnvArchivePath,
		"logging.level":            EnvLogLevel,
		"logging.format":           EnvLogFormat,
		"logging.source":           EnvLogSource,
		"logging.file":             EnvLogFile,
	}[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
