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
	"strings"
	"text/tabwriter"

	"github.com/FaugusLauncher/faugus-core/pkg/proton"
	"github.com/spf13/cobra"
)

func newRunnersCmd(st *state) *cobra.Command {
	runnersCmd := &cobra.Command{
		Use:   "runners",
		Short: "List installed Proton runners and the default runner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			installed := st.app.Runners.Installed()
			if len(installed) == 0 {
				_, _ = fmt.Fprintf(out(cmd), "No runners installed in %s\n",
					strings.Join(st.app.Runners.Roots(), ", "))
			} else {
				w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "NAME\tDISPLAY NAME\tPATH")
				for _, r := range installed {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.DisplayName, r.Path)
				}
				if err := w.Flush(); err != nil {
					return err //nolint:wrapcheck // stdout write failure
				}
			}

			def := st.app.Settings.LaunchSettings().DefaultRunner
			if def == "" {
				return nil
			}
			path, err := st.app.Runners.Resolve(def)
			if err != nil {
				_, _ = fmt.Fprintf(out(cmd), "\nDefault runner %s: %v\n", def, err)
				return nil
			}
			_, _ = fmt.Fprintf(out(cmd), "\nDefault runner %s: %s\n", def, path)
			return nil
		},
	}

	runnersCmd.AddCommand(newRunnersRmCmd(st))
	return runnersCmd
}

func newRunnersRmCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an installed runner directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !st.app.Runners.IsInstalled(name) {
				return fmt.Errorf("%w: %s", proton.ErrRunnerNotFound, name)
			}
			if err := st.app.Runners.Delete(name); err != nil {
				return err //nolint:wrapcheck // names the runner
			}
			_, _ = fmt.Fprintf(out(cmd), "Removed %s\n", name)
			return nil
		},
	}
}
