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
	"time"

	"github.com/FaugusLauncher/faugus-core/pkg/service/sessions"
	"github.com/spf13/cobra"
)

func newStopCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <title>",
		Short: "Kill a running game and every process it started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			stopped, err := st.app.Sessions.Stop(cmd.Context(), title)
			if err != nil && stopped.Process.GameTitle == "" {
				return err //nolint:wrapcheck // already names the game
			}
			switch {
			case stopped.State == sessions.StateExitedExternally:
				_, _ = fmt.Fprintf(out(cmd), "'%s' had already exited\n", title)
			case stopped.Played > 0:
				_, _ = fmt.Fprintf(out(cmd), "Stopped '%s' after %s\n", title, stopped.Played.Round(time.Second))
			default:
				_, _ = fmt.Fprintf(out(cmd), "Stopped '%s'\n", title)
			}
			return err //nolint:wrapcheck // partial kill failures
		},
	}
}

func newKillAllCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "killall",
		Short: "Kill every Wine process on this machine, tracked or not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pids, err := st.app.Sessions.KillAllWine(cmd.Context())
			_, _ = fmt.Fprintf(out(cmd), "Killed %d Wine processes\n", len(pids))
			return err //nolint:wrapcheck // wrapped by the session manager
		},
	}
}
