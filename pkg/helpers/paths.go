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

package helpers

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
)

// Well known binary names looked up on the host.
const (
	UmuRunBin     = "umu-run"
	GameModeBin   = "gamemoderun"
	MangoHudBin   = "mangohud"
	flatpakSteam  = "com.valvesoftware.Steam"
	compatToolDir = "compatibilitytools.d"
)

// Paths resolves the directories and binaries Faugus works with. Zero
// values are not usable, build one with NewPaths.
type Paths struct {
	lookPath  func(string) (string, error)
	stat      func(string) (os.FileInfo, error)
	ConfigDir string
	DataDir   string
	StateDir  string
	Home      string
}

// PathsOption configures a Paths.
type PathsOption func(*Paths)

// WithLookPath replaces the PATH lookup (for testing).
func WithLookPath(fn func(string) (string, error)) PathsOption {
	return func(p *Paths) {
		p.lookPath = fn
	}
}

// WithStat replaces the file stat used to check configured binaries.
func WithStat(fn func(string) (os.FileInfo, error)) PathsOption {
	return func(p *Paths) {
		p.stat = fn
	}
}

// WithHome overrides the home directory and derives the XDG dirs from it.
func WithHome(home string) PathsOption {
	return func(p *Paths) {
		p.Home = home
		p.ConfigDir = filepath.Join(home, ".config", config.AppName)
		p.DataDir = filepath.Join(home, ".local", "share", config.AppName)
		p.StateDir = filepath.Join(home, ".local", "state", config.AppName)
	}
}

// NewPaths builds Paths from the XDG base directories of the current user.
func NewPaths(opts ...PathsOption) *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
		home = xdg.Home
	}

	p := &Paths{
		lookPath:  exec.LookPath,
		stat:      os.Stat,
		Home:      home,
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		StateDir:  filepath.Join(xdg.StateHome, config.AppName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GamesFile is the game list written by the launcher UI.
func (p *Paths) GamesFile() string {
	return filepath.Join(p.ConfigDir, "games.json")
}

// EnvarFile holds global KEY=VALUE overrides applied to every launch.
func (p *Paths) EnvarFile() string {
	return filepath.Join(p.ConfigDir, "envar.txt")
}

// RunningGamesFile holds the tracked launches.
func (p *Paths) RunningGamesFile() string {
	return filepath.Join(p.ConfigDir, "running-games.json")
}

// LatestGamesFile holds the recently launched titles.
func (p *Paths) LatestGamesFile() string {
	return filepath.Join(p.ConfigDir, "latest-games.txt")
}

// GameLogsDir receives per-game wine logs.
func (p *Paths) GameLogsDir() string {
	return filepath.Join(p.ConfigDir, "logs")
}

// AppLogDir receives the application's own rotating log.
func (p *Paths) AppLogDir() string {
	return filepath.Join(p.StateDir, config.LogsDir)
}

// DefaultPrefix is used for games that don't set their own prefix.
func (p *Paths) DefaultPrefix() string {
	return filepath.Join(p.Home, "Faugus", "default")
}

// CompatToolDirs returns every directory that may hold installed runners,
// in search order. A non-empty configured dir is searched first.
func (p *Paths) CompatToolDirs(configured string) []string {
	dirs := make([]string, 0, 4)
	if configured != "" {
		dirs = append(dirs, configured)
	}
	return append(dirs,
		filepath.Join(p.Home, ".steam", "steam", compatToolDir),
		filepath.Join(p.Home, ".local", "share", "Steam", compatToolDir),
		filepath.Join(p.Home, ".var", "app", flatpakSteam, "data", "Steam", compatToolDir),
	)
}

// FindBinary looks a binary up on PATH.
func (p *Paths) FindBinary(name string) (string, bool) {
	path, err := p.lookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// UmuRun finds the launcher binary, preferring a configured path.
func (p *Paths) UmuRun(configured string) (string, bool) {
	if configured != "" {
		if info, err := p.stat(configured); err == nil && !info.IsDir() {
			return configured, true
		}
		log.Warn().Str("path", configured).Msg("configured umu-run not found, falling back to PATH")
	}
	return p.FindBinary(UmuRunBin)
}
