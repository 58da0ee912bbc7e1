// Faugus Core
// Copyright (c) 2026 The Faugus Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Faugus Core.
//
// Faugus Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Faugus Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Faugus Core.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/FaugusLauncher/faugus-core/pkg/service/sessions"
	"github.com/spf13/cobra"
)

func newStatusCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status [title]",
		Short: "Show tracked games and whether they are still running",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []sessions.Session
			if len(args) == 1 {
				s, err := st.app.Sessions.Status(cmd.Context(), args[0])
				if err != nil {
					return err //nolint:wrapcheck // already names the game
				}
				list = []sessions.Session{s}
			} else {
				var err error
				list, err = st.app.Sessions.List(cmd.Context())
				if err != nil {
					return err //nolint:wrapcheck // already names the game
				}
			}

			if len(list) == 0 {
				_, _ = fmt.Fprintln(out(cmd), "No games running")
				return nil
			}

			w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TITLE\tPID\tSTATE\tSTARTED")
			for _, s := range list {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.Process.GameTitle,
					strconv.Itoa(s.Process.MainPID),
					s.State,
					started(s.Process.StartedAt),
				)
			}
			return w.Flush() //nolint:wrapcheck // stdout write failure
		},
	}
}

func started(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func newPruneCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Forget tracked games that have already exited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pruned, err := st.app.Sessions.Prune(cmd.Context())
			for _, title := range pruned {
				_, _ = fmt.Fprintf(out(cmd), "Forgot '%s'\n", title)
			}
			if err == nil && len(pruned) == 0 {
				_, _ = fmt.Fprintln(out(cmd), "Nothing to prune")
			}
			return err //nolint:wrapcheck // registry errors are descriptive
		},
	}
}

func newRecentCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently launched games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, title := range st.app.Sessions.Recent() {
				_, _ = fmt.Fprintln(out(cmd), title)
			}
			return nil
		},
	}
}
