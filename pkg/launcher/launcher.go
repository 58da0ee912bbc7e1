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

// Package launcher starts games through umu-run. It composes the launch
// environment, resolves the game's runner, and spawns the launcher binary,
// optionally wrapped by gamemoderun.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/FaugusLauncher/faugus-core/pkg/games"
	"github.com/FaugusLauncher/faugus-core/pkg/helpers"
	"github.com/FaugusLauncher/faugus-core/pkg/helpers/command"
	"github.com/FaugusLauncher/faugus-core/pkg/launcher/envar"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrLauncherNotFound is returned when umu-run isn't configured or on PATH.
var ErrLauncherNotFound = errors.New("umu-run not found, install UMU-Launcher")

// RunnerResolver maps a game's runner id to a directory.
type RunnerResolver interface {
	Resolve(id string) (string, error)
}

// Host finds the launcher binary and optional helpers.
type Host interface {
	HostResolver
	UmuRun(configured string) (string, bool)
}

// Settings provides the current launch settings.
type Settings interface {
	LaunchSettings() config.Launch
}

// Dirs are the host locations a launch reads or writes.
type Dirs struct {
	EnvarFile     string
	LogsDir       string
	DefaultPrefix string
}

// Launched describes a game that was started.
type Launched struct {
	Handle
	Game games.Game
}

// Launcher starts games.
type Launcher struct {
	fs       afero.Fs
	settings Settings
	runners  RunnerResolver
	host     Host
	spawner  *Spawner
	dirs     Dirs
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithFs replaces the filesystem used for the override file, directories
// and logs.
func WithFs(fsys afero.Fs) Option {
	return func(l *Launcher) {
		l.fs = fsys
	}
}

// WithSpawner replaces the process spawner.
func WithSpawner(s *Spawner) Option {
	return func(l *Launcher) {
		l.spawner = s
	}
}

func NewLauncher(settings Settings, runners RunnerResolver, host Host, dirs Dirs, opts ...Option) *Launcher {
	l := &Launcher{
		fs:       afero.NewOsFs(),
		settings: settings,
		runners:  runners,
		host:     host,
		dirs:     dirs,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.spawner == nil {
		l.spawner = NewSpawner(l.fs, &command.RealExecutor{})
	}
	return l
}

// BuildArgs returns the executable path followed by the launch arguments
// and the game arguments, each split on whitespace.
func BuildArgs(game *games.Game) []string {
	args := []string{game.Path}
	args = append(args, strings.Fields(game.LaunchArguments)...)
	args = append(args, strings.Fields(game.GameArguments)...)
	return args
}

// Launch starts game. Everything that can fail before the process exists
// is checked first, so an error means nothing was started.
//
//nolint:gocritic // game is a copy the launch may fill defaults into
func (l *Launcher) Launch(ctx context.Context, game games.Game) (Launched, error) {
	if err := game.Validate(); err != nil {
		return Launched{}, err
	}
	settings := l.settings.LaunchSettings()

	if game.Prefix == "" {
		game.Prefix = settings.DefaultPrefix
		if game.Prefix == "" {
			game.Prefix = l.dirs.DefaultPrefix
		}
	}

	runnerPath, err := l.runners.Resolve(game.Runner)
	if err != nil {
		return Launched{}, fmt.Errorf("failed to resolve runner for %s: %w", game.Title, err)
	}

	umuRun, ok := l.host.UmuRun(settings.UmuRun)
	if !ok {
		return Launched{}, ErrLauncherNotFound
	}

	overrides := envar.Load(l.fs, l.dirs.EnvarFile)
	env := Compose(&game, overrides, settings, runnerPath, l.host)

	spec := &SpawnSpec{
		Command: umuRun,
		Args:    BuildArgs(&game),
		Env:     env,
		Dirs:    []string{game.Prefix, l.dirs.LogsDir},
	}
	if game.GameMode {
		if wrapper, ok := l.host.FindBinary(helpers.GameModeBin); ok {
			spec.Wrapper = wrapper
		} else {
			log.Info().Str("game", game.Title).Msg("gamemode requested but not installed")
		}
	}
	if settings.EnableLogging && l.dirs.LogsDir != "" {
		spec.LogPath = filepath.Join(l.dirs.LogsDir, game.GameID+".log")
	}

	log.Info().
		Str("game", game.Title).
		Str("gameid", game.GameID).
		Str("runner", runnerPath).
		Str("prefix", game.Prefix).
		Msg("launching game")

	handle, err := l.spawner.Spawn(ctx, spec)
	if err != nil {
		return Launched{}, fmt.Errorf("failed to launch %s: %w", game.Title, err)
	}

	return Launched{Handle: handle, Game: game}, nil
}

