/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"garmentsketch/internal/config"
	"garmentsketch/internal/crash"
	"garmentsketch/internal/editor"
	applog "garmentsketch/internal/log"
)

// active is the editor a running command is working on; crash recovery autosaves it.
var active *editor.Editor

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	defer crash.Recover(crash.Target{Autosave: autosaveActive})

	l.Debug("start", slog.Int("args", len(os.Args)))
	if err := newRootCmd(cfg).Execute(); err != nil {
		l.Error("command failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func autosaveActive() ([]byte, error) {
	if active == nil {
		return nil, fmt.Errorf("no open document")
	}
	return active.ExportSnapshot()
}
