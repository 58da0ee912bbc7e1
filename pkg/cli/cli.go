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

// Package cli implements the faugus-run command line. Commands are thin:
// they look games up, hand them to the session manager and print what
// happened.
package cli

import (
	"context"
	"io"

	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/FaugusLauncher/faugus-core/pkg/games"
	"github.com/FaugusLauncher/faugus-core/pkg/proton"
	"github.com/FaugusLauncher/faugus-core/pkg/service/sessions"
	"github.com/spf13/cobra"
)

// Sessions is the part of sessions.Manager the commands use.
type Sessions interface {
	Launch(ctx context.Context, game games.Game) (sessions.Session, error)
	Stop(ctx context.Context, title string) (sessions.Stopped, error)
	Status(ctx context.Context, title string) (sessions.Session, error)
	List(ctx context.Context) ([]sessions.Session, error)
	Prune(ctx context.Context) ([]string, error)
	Recent() []string
	KillAllWine(ctx context.Context) ([]int, error)
}

// Library finds games in the game list.
type Library interface {
	FindByID(ctx context.Context, id string) (games.Game, error)
	FindByTitle(ctx context.Context, title string) (games.Game, error)
}

// Runners lists, resolves and removes installed runners.
type Runners interface {
	Roots() []string
	Installed() []proton.Runner
	Resolve(id string) (string, error)
	IsInstalled(name string) bool
	Delete(name string) error
}

// Settings provides the current launch settings.
type Settings interface {
	LaunchSettings() config.Launch
}

// App is everything a command needs.
type App struct {
	Sessions Sessions
	Games    Library
	Runners  Runners
	Settings Settings
	// Close is called after the command returns, if set.
	Close func()
}

// Loader builds the App after flags are parsed.
type Loader func(opts *Options) (*App, error)

// Options are the global flags.
type Options struct {
	Verbose bool
	Debug   bool
}

// state is shared by the root command and its subcommands.
type state struct {
	app  *App
	load Loader
	opts Options
}

func (st *state) close() {
	if st.app != nil && st.app.Close != nil {
		st.app.Close()
	}
}

func newRootCommand(load Loader) (*cobra.Command, *state) {
	st := &state{load: load}
	var gameID string

	root := &cobra.Command{
		Use:     "faugus-run",
		Short:   "Launch and manage Windows games running under Proton",
		Version: config.AppVersion,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			app, err := st.load(&st.opts)
			if err != nil {
				return err
			}
			st.app = app
			return nil
		},
		// faugus-run --game <id> is how desktop entries start games
		RunE: func(cmd *cobra.Command, _ []string) error {
			if gameID == "" {
				return cmd.Help()
			}
			return launchGame(cmd, st, gameID, "")
		},
	}

	root.PersistentFlags().BoolVar(&st.opts.Verbose, "verbose", false, "Also write logs to stderr")
	root.PersistentFlags().BoolVar(&st.opts.Debug, "debug", false, "Enable debug logging")
	root.Flags().StringVar(&gameID, "game", "", "ID of the game to launch")

	root.AddCommand(newRunCmd(st))
	root.AddCommand(newStopCmd(st))
	root.AddCommand(newStatusCmd(st))
	root.AddCommand(newPruneCmd(st))
	root.AddCommand(newRecentCmd(st))
	root.AddCommand(newRunnersCmd(st))
	root.AddCommand(newKillAllCmd(st))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, st
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	root, st := newRootCommand(LoadApp)
	defer st.close()
	return root.ExecuteContext(ctx) //nolint:wrapcheck // printed as is by main
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
