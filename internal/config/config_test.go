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
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, p)
	return p
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HistoryDepth != 50 || cfg.Editor.MinZoom != 0.1 || cfg.Editor.MaxZoom != 5 {
		t.Fatalf("unexpected defaults: %#v", cfg.Editor)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Editor.GridUnit = 25
	cfg.Editor.PasteOffset = 8
	cfg.Storage.ArchivePath = "/tmp/x.db"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Editor.GridUnit != 25 || got.Editor.PasteOffset != 8 || got.Storage.ArchivePath != "/tmp/x.db" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestMalformedFileKeepsDefaults(t *testing.T) {
	p := isolate(t)
	if err := os.WriteFile(p, []byte("editor: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Editor.HistoryDepth != 50 {
		t.Fatalf("defaults not kept: %d", cfg.Editor.HistoryDepth)
	}
}

func TestEnvOverridesEditor(t *testing.T) {
	isolate(t)
	t.Setenv(EnvHistoryDepth, "12")
	t.Setenv(EnvCanvasSize, "1024x768")
	t.Setenv(EnvGridUnit, "nope")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HistoryDepth != 12 {
		t.Fatalf("HistoryDepth = %d, want 12", cfg.Editor.HistoryDepth)
	}
	if cfg.Editor.CanvasWidth != 1024 || cfg.Editor.CanvasHeight != 768 {
		t.Fatalf("canvas = %vx%v", cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight)
	}
	if cfg.Editor.GridUnit != 10 {
		t.Fatalf("invalid grid override should be ignored, got %v", cfg.Editor.GridUnit)
	}
	if name, ok := EnvOverrideFor("editor.canvas_width"); !ok || name != EnvCanvasSize {
		t.Fatalf("EnvOverrideFor = %q,%v", name, ok)
	}
	if _, ok := EnvOverrideFor("editor.paste_offset"); ok {
		t.Fatalf("paste offset has no env override")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/gsk.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/gsk.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestMergeSwapsInvertedZoom(t *testing.T) {
	dst := Defaults()
	src := AppConfig{Editor: EditorConfig{MinZoom: 4, MaxZoom: 2}}
	mergeInto(&dst, &src)
	if dst.Editor.MinZoom != 2 || dst.Editor.MaxZoom != 4 {
		t.Fatalf("zoom range = [%v,%v]", dst.Editor.MinZoom, dst.Editor.MaxZoom)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/gsk.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/gsk.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestArchivePathDefaultsNextToConfig(t *testing.T) {
	p := isolate(t)
	got, err := Defaults().ArchivePath()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(filepath.Dir(p), "archive.db") {
		t.Fatalf("ArchivePath = %q", got)
	}
}
