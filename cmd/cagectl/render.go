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
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cagekit/internal/overlay"
	"cagekit/internal/scenario"
)

func newRenderCmd(c *cli) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "render <scenario>",
		Short: "Replay a scenario and render the final selection with its cage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.render(cmd.Context(), args[0], format, out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (svg, png, pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: scenario path with the format's extension)")
	return cmd
}

func (c *cli) render(ctx context.Context, path, format, out string) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case "svg", "png", "pdf":
	default:
		return "", fmt.Errorf("unknown format %q (svg, png, pdf)", format)
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return "", err
	}
	res, err := scenario.Run(ctx, sc, c.cfg)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	if err := draw(f, res, format, sc, c.cfg.OverlayStyle()); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output: %w", err)
	}
	return out, nil
}

func draw(f io.Writer, res *scenario.Result, format string, sc *scenario.Scenario, st overlay.Style) error {
	w, h := sc.Size()
	switch format {
	case "png":
		r, err := overlay.NewRaster(int(math.Ceil(w)), int(math.Ceil(h)), st)
		if err != nil {
			return err
		}
		res.Draw(r)
		return r.EncodePNG(f)
	case "pdf":
		p, err := overlay.NewPDF(w, h, st)
		if err != nil {
			return err
		}
		res.Draw(p)
		return p.Output(f)
	default:
		s, err := overlay.NewSVG(w, h, st)
		if err != nil {
			return err
		}
		res.Draw(s)
		_, err = s.WriteTo(f)
		return err
	}
}
