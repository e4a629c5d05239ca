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
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cagekit/internal/gesture"
	"cagekit/internal/journal"
	applog "cagekit/internal/log"
	"cagekit/internal/scenario"
	"cagekit/internal/vector"
)

func newReplayCmd(c *cli) *cobra.Command {
	var (
		record   bool
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "replay <scenario>...",
		Short: "Replay scenarios through the gesture controller and print each step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.replay(cmd.Context(), cmd.OutOrStdout(), args, record || c.cfg.Journal.Enabled, parallel)
		},
	}
	cmd.Flags().BoolVar(&record, "journal", false, "record committed gestures in the journal")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "number of scenarios replayed at once")
	return cmd
}

func (c *cli) replay(ctx context.Context, out io.Writer, paths []string, record bool, parallel int) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")

	var j *journal.Journal
	if record {
		var err error
		if j, err = journal.Open(ctx, c.cfg.Journal.Path); err != nil {
			return err
		}
		defer func() {
			if err := j.Close(); err != nil {
				l.Warn("close journal failed", slog.Any("err", err))
			}
		}()
	}

	results := make([]*scenario.Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}
			var recErr error
			var listeners []func(gesture.Event)
			if j != nil {
				listeners = append(listeners, func(ev gesture.Event) {
					if ev.Phase != gesture.PhaseCommit || recErr != nil {
						return
					}
					_, recErr = j.Record(gctx, journal.FromEvent(ev))
				})
			}
			res, err := scenario.Run(gctx, sc, c.cfg, listeners...)
			if err != nil {
				return err
			}
			if recErr != nil {
				return fmt.Errorf("journal %s: %w", sc.Name, recErr)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if err := printResult(out, res); err != nil {
			return err
		}
	}
	l.Info("replayed", slog.Int("scenarios", len(results)), slog.Bool("journal", j != nil))
	return nil
}

func printResult(w io.Writer, res *scenario.Result) error {
	if _, err := fmt.Fprintf(w, "scenario %s\n", res.Name); err != nil {
		return err
	}
	for _, st := range res.Steps {
		mark := ""
		if !st.Applied {
			mark = " (ignored)"
		}
		if _, err := fmt.Fprintf(w, "  %2d %-6s kind=%-6s cursor=%-11s %s%s\n",
			st.Index, st.Action, st.Kind, st.Cursor, formatBounds(st.Bounds), mark); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  final %s\n", formatBounds(res.Final))
	return err
}

func formatBounds(b vector.Bounds) string {
	return fmt.Sprintf("[%g %g %g %g]", b[0].X, b[0].Y, b[1].X, b[1].Y)
}
