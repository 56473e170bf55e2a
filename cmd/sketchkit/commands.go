/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"garmentsketch/internal/config"
	"garmentsketch/internal/editor"
	"garmentsketch/internal/export"
	applog "garmentsketch/internal/log"
	"garmentsketch/internal/scene"
	"garmentsketch/internal/storage"
	"garmentsketch/internal/vector"
	"garmentsketch/internal/version"
)

func newRootCmd(cfg config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "sketchkit",
		Short:         "Garment Sketch document tool",
		Long:          "sketchkit creates, validates, imports assets into, exports and archives Garment Sketch documents.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newVersionCmd(),
		newNewCmd(cfg),
		newValidateCmd(),
		newIngestCmd(cfg),
		newExportCmd(cfg),
		newArchiveCmd(cfg),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Garment Sketch %s\n", version.String())
			return err
		},
	}
}

func newNewCmd(cfg config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := openEditor(cfg)
			if err := saveDocument(ed, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s (document %s)\n", args[0], ed.Scene().DocID)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check documents against the snapshot schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				s, err := decodeFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d root elements\n", path, s.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newIngestCmd(cfg config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <document> <asset>...",
		Short: "Place SVG or raster files into a document",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadDocument(cfg, args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				a, err := ed.IngestAsset(filepath.Base(path), data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s %gx%g\n", path, a.Kind, a.Ref, a.Width, a.Height)
			}
			return saveDocument(ed, args[0])
		},
	}
}

func newExportCmd(cfg config.AppConfig) *cobra.Command {
	var (
		format string
		out    string
		title  string
		scale  float32
		width  float32
		height float32
	)
	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Render a document to svg, pdf or png",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			size := vector.Size{W: width, H: height}
			if size.W <= 0 || size.H <= 0 {
				size = vector.Size{W: cfg.Editor.CanvasWidth, H: cfg.Editor.CanvasHeight}
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			err = writeFile(out, func(w io.Writer) error {
				switch strings.ToLower(format) {
				case "svg":
					return export.WriteSVG(w, s, size)
				case "pdf":
					return export.WritePDF(w, s, size, export.PDFOptions{Title: title, Author: "Garment Sketch"})
				case "png":
					return export.WritePNG(w, s, size, export.PNGOptions{Scale: scale})
				}
				return fmt.Errorf("unknown export format %q", format)
			})
			if err != nil {
				return err
			}
			applog.WithOperation(applog.WithComponent("cli"), "export").Info("exported",
				slog.String("format", format), slog.String("out", out), slog.Int("elements", s.Len()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "", "svg, pdf or png (default: from --out extension)")
	f.StringVarP(&out, "out", "o", "", "output file")
	f.StringVar(&title, "title", "", "PDF document title")
	f.Float32Var(&scale, "scale", 1, "PNG pixel scale")
	f.Float32Var(&width, "width", 0, "page width in scene units (default: canvas width)")
	f.Float32Var(&height, "height", 0, "page height in scene units (default: canvas height)")
	return cmd
}

func newArchiveCmd(cfg config.AppConfig) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Keep document snapshots in the local archive",
	}
	cmd.PersistentFlags().StringVar(&path, "db", "", "archive database (default: from config)")
	open := func(ctx context.Context) (*storage.Archive, error) {
		p := path
		if p == "" {
			var err error
			if p, err = cfg.ArchivePath(); err != nil {
				return nil, err
			}
		}
		return storage.Open(ctx, p)
	}

	var label string
	save := &cobra.Command{
		Use:   "save <document>",
		Short: "Store the document as a new snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if label == "" {
				label = filepath.Base(args[0])
			}
			id, err := a.Save(cmd.Context(), s.DocID, label, data, time.Now())
			if err != nil {
				return err
			}
			pruned, err := a.Prune(cmd.Context(), s.DocID, cfg.Storage.KeepLatest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %d of %s (pruned %d)\n", id, s.DocID, pruned)
			return err
		},
	}
	save.Flags().StringVar(&label, "label", "", "snapshot label (default: file name)")

	restore := &cobra.Command{
		Use:   "restore <doc-id> <file>",
		Short: "Write the latest snapshot of a document to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			e, err := a.Latest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("no snapshots for document %s", args[0])
			}
			if _, err := decode(e.Blob); err != nil {
				return fmt.Errorf("snapshot %d: %w", e.ID, err)
			}
			if err := writeFile(args[1], func(w io.Writer) error { _, err := w.Write(e.Blob); return err }); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %d (%s) to %s\n", e.ID, e.TS.Format(time.RFC3339), args[1])
			return err
		},
	}

	var limit int
	list := &cobra.Command{
		Use:   "list [doc-id]",
		Short: "List archived documents, or the snapshots of one document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if len(args) == 0 {
				docs, err := a.Documents(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "DOCUMENT\tSNAPSHOTS\tLATEST")
				for _, d := range docs {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", d.DocID, d.Count, d.Latest.Format(time.RFC3339))
				}
				return tw.Flush()
			}
			entries, err := a.List(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "ID\tTIME\tLABEL\tBYTES")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", e.ID, e.TS.Format(time.RFC3339), e.Label, len(e.Blob))
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum snapshots to list")

	cmd.AddCommand(save, restore, list)
	return cmd
}

func openEditor(cfg config.AppConfig) *editor.Editor {
	opts := editor.OptionsFromConfig(cfg.Editor)
	opts.Logger = applog.WithComponent("editor")
	ed := editor.New(opts)
	active = ed
	return ed
}

func loadDocument(cfg config.AppConfig, path string) (*editor.Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ed := openEditor(cfg)
	if err := ed.ImportSnapshot(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ed, nil
}

func saveDocument(ed *editor.Editor, path string) error {
	data, err := ed.ExportSnapshot()
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { _, err := w.Write(data); return err })
}

func decode(data []byte) (*scene.Scene, error) {
	if err := scene.Validate(data); err != nil {
		return nil, err
	}
	return scene.Decode(data)
}

func decodeFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// writeFile writes through a temp file in the same directory and renames it into place.
func writeFile(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".sketchkit-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("replace %s", path), err)
	}
	return nil
}
