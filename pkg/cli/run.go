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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoGameSelected = errors.New("one of --game or --title is required")

func newRunCmd(st *state) *cobra.Command {
	var gameID, title string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch a game from the game list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if gameID == "" && title == "" {
				return errNoGameSelected
			}
			return launchGame(cmd, st, gameID, title)
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "ID of the game to launch")
	cmd.Flags().StringVar(&title, "title", "", "Title of the game to launch")
	cmd.MarkFlagsMutuallyExclusive("game", "title")

	return cmd
}

// launchGame finds a game by id, or by title when id is empty, and starts
// it.
func launchGame(cmd *cobra.Command, st *state, id, title string) error {
	ctx := cmd.Context()

	lookup := id
	find := st.app.Games.FindByID
	if id == "" {
		lookup = title
		find = st.app.Games.FindByTitle
	}
	game, err := find(ctx, lookup)
	if err != nil {
		return err //nolint:wrapcheck // already names the game
	}

	session, err := st.app.Sessions.Launch(ctx, game)
	if err != nil && session.Process.MainPID == 0 {
		return err //nolint:wrapcheck // launcher errors name the game
	}

	_, _ = fmt.Fprintf(out(cmd), "Game '%s' launched with PID: %d\n",
		session.Process.GameTitle, session.Process.MainPID)
	// started but not tracked
	return err //nolint:wrapcheck // describes the tracking failure
}
