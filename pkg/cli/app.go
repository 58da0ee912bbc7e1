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
	"io"
	"os"

	"github.com/FaugusLauncher/faugus-core/internal/telemetry"
	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/FaugusLauncher/faugus-core/pkg/games"
	"github.com/FaugusLauncher/faugus-core/pkg/helpers"
	"github.com/FaugusLauncher/faugus-core/pkg/launcher"
	"github.com/FaugusLauncher/faugus-core/pkg/procs"
	"github.com/FaugusLauncher/faugus-core/pkg/proton"
	"github.com/FaugusLauncher/faugus-core/pkg/service/registry"
	"github.com/FaugusLauncher/faugus-core/pkg/service/sessions"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LoadApp wires the real services: config and logging first, then the
// game list, runners, launcher and session manager on the OS filesystem.
func LoadApp(opts *Options) (*App, error) {
	if os.Geteuid() == 0 {
		return nil, fmt.Errorf("%s cannot be run as root", config.AppName)
	}

	paths := helpers.NewPaths()

	cfg, err := config.NewConfig(paths.ConfigDir, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Debug {
		cfg.SetDebugLogging(true)
	}

	var logWriters []io.Writer
	if opts.Verbose {
		logWriters = append(logWriters, os.Stderr)
	}
	if err := helpers.InitLogging(paths.AppLogDir(), cfg.DebugLogging(), logWriters...); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	if err := telemetry.Init(cfg.ErrorReporting(), config.AppVersion); err != nil {
		log.Warn().Err(err).Msg("error reporting not started")
	}

	log.Info().
		Str("version", config.AppVersion).
		Str("config", cfg.Path()).
		Msg("faugus-run starting")

	fs := afero.NewOsFs()
	settings := cfg.LaunchSettings()

	runners := proton.NewResolver(fs, paths.CompatToolDirs(settings.CompatToolsDir))
	l := launcher.NewLauncher(cfg, runners, paths, launcher.Dirs{
		EnvarFile:     paths.EnvarFile(),
		LogsDir:       paths.GameLogsDir(),
		DefaultPrefix: paths.DefaultPrefix(),
	}, launcher.WithFs(fs))
	reg := registry.New(fs, paths.RunningGamesFile(), paths.LatestGamesFile())

	return &App{
		Sessions: sessions.NewManager(l, reg, procs.NewTerminator()),
		Games:    games.NewStore(fs, paths.GamesFile()),
		Runners:  runners,
		Settings: cfg,
		Close:    telemetry.Close,
	}, nil
}
