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

	"github.com/spf13/cobra"

	"cagekit/internal/config"
	applog "cagekit/internal/log"
	"cagekit/internal/version"
)

// cli carries the flags and the loaded config shared by every subcommand.
type cli struct {
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       config.AppConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.Defaults()}
	root := &cobra.Command{
		Use:   "cagectl",
		Short: "Transformation cage toolkit",
		Long: `cagectl drives the transformation cage engine: the bounding box with eight
handles used to resize, rotate and move a selection.

Examples:
  cagectl replay scenarios/*.yaml
  cagectl render corner.yaml --format png --out corner.png
  cagectl ui corner.yaml`,
		Version:           version.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return c.init() },
	}
	root.SetVersionTemplate("cagectl {{.Version}}\n")

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is config.yaml in the user config dir, or $CAGE_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(newReplayCmd(c), newRenderCmd(c), newUICmd(c), newVersionCmd())
	return root
}

func (c *cli) init() error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logging.Format = c.logFormat
	}
	applog.Init(cfg.LogOptions())
	c.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cagectl", version.String())
			return err
		},
	}
}
