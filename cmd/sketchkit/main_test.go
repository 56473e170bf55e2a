/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"garmentsketch/internal/config"
	"garmentsketch/internal/scene"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(config.Defaults())
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("sketchkit %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><path d="M0 0 L100 0 L100 100 Z"/></svg>`

func TestNewIngestExport(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "jacket.json")
	run(t, "new", doc)
	if out := run(t, "validate", doc); !strings.Contains(out, "ok, 0 root elements") {
		t.Fatalf("unexpected validate output: %s", out)
	}

	svg := filepath.Join(dir, "pocket.svg")
	if err := os.WriteFile(svg, []byte(squareSVG), 0o644); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	run(t, "ingest", doc, svg)
	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	s, err := scene.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Len() != 1 || s.Elements()[0].Kind != scene.KindPen {
		t.Fatalf("expected one pen path after ingest, got %d roots", s.Len())
	}

	for _, format := range []string{"svg", "pdf", "png"} {
		out := filepath.Join(dir, "jacket."+format)
		run(t, "export", doc, "--out", out)
		info, err := os.Stat(out)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s export missing: %v", format, err)
		}
	}
}

func TestValidateRejectsBrokenDocument(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"format":"nope"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := newRootCmd(config.Defaults())
	cmd.SetArgs([]string{"validate", bad})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestArchiveSaveListRestore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "archive.db")
	doc := filepath.Join(dir, "skirt.json")
	run(t, "new", doc)
	s, err := decodeFile(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	run(t, "archive", "save", doc, "--db", db, "--label", "first")
	run(t, "archive", "save", doc, "--db", db)

	if out := run(t, "archive", "list", "--db", db); !strings.Contains(out, s.DocID) {
		t.Fatalf("document missing from list:\n%s", out)
	}
	if out := run(t, "archive", "list", s.DocID, "--db", db); !strings.Contains(out, "first") {
		t.Fatalf("snapshot label missing:\n%s", out)
	}

	restored := filepath.Join(dir, "restored.json")
	run(t, "archive", "restore", s.DocID, restored, "--db", db)
	want, _ := os.ReadFile(doc)
	got, err := os.ReadFile(restored)
	if err != nil || !bytes.Equal(got, want) {
		t.Fatalf("restored document differs: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	if out := run(t, "version"); !strings.HasPrefix(out, "Garment Sketch ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
