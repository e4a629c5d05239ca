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
	"path/filepath"
	"strings"

	"cagekit/internal/config"
	"cagekit/internal/crash"
	applog "cagekit/internal/log"
)

func main() {
	// initialize structured logging using environment defaults; the root
	// command re-initialises it once the config is loaded
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover(&crash.Site{Dir: crashDir(), Details: map[string]string{"args": strings.Join(os.Args[1:], " ")}})

	l.Debug("start", slog.Int("args", len(os.Args)))
	if err := newRootCmd().Execute(); err != nil {
		l.Error("command failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func crashDir() string {
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "crash")
}
