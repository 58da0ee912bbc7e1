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

// Package proton finds Proton-compatible runners installed in Steam's
// compatibility tool directories and turns a game's runner id into the
// directory passed to umu-run as PROTONPATH.
package proton

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRunnerInvalid is returned for runner ids that could escape the
	// compatibility tool directories.
	ErrRunnerInvalid = errors.New("invalid runner id")
	// ErrRunnerNotFound is returned when no installed runner matches.
	ErrRunnerNotFound = errors.New("runner not found")
)

// RunnerConfig describes a runner family with a "latest" alias.
type RunnerConfig struct {
	// Label is the name shown to users and stored in games.
	Label string
	// InstallDir is the directory the latest release is unpacked to.
	InstallDir string
	// Prefix is the directory name prefix of versioned releases.
	Prefix string
}

// Configs is the table of known runner families.
var Configs = []RunnerConfig{
	{Label: "GE-Proton", InstallDir: "GE-Proton Latest", Prefix: "GE-Proton"},
	{Label: "Proton-EM", InstallDir: "Proton-EM Latest", Prefix: "Proton-EM"},
	{Label: "UMU-Proton", InstallDir: "UMU-Latest", Prefix: "UMU-Proton"},
}

// ConfigFor returns the family whose label or install dir is id.
func ConfigFor(id string) (RunnerConfig, bool) {
	for _, c := range Configs {
		if id == c.Label || id == c.InstallDir {
			return c, true
		}
	}
	return RunnerConfig{}, false
}

// familyOf returns the label of the family a directory name belongs to.
func familyOf(name string) string {
	for _, c := range Configs {
		if name == c.InstallDir || strings.HasPrefix(name, c.Prefix) {
			return c.Label
		}
	}
	return ""
}

// Validate rejects runner ids that aren't a plain directory name. An empty
// id is valid and means "let umu-run pick".
func Validate(id string) error {
	switch {
	case id == "":
		return nil
	case id == ".":
		return fmt.Errorf("%w: %q", ErrRunnerInvalid, id)
	case strings.ContainsAny(id, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator or NUL", ErrRunnerInvalid, id)
	case strings.Contains(id, ".."):
		return fmt.Errorf("%w: %q contains '..'", ErrRunnerInvalid, id)
	}
	return nil
}
