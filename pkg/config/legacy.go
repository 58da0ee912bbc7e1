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

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

// ImportLegacy reads the section-less key=value config.ini written by
// older Faugus releases into vals. Keys it doesn't know are ignored.
func ImportLegacy(path string, vals *Values) error {
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return fmt.Errorf("load legacy config: %w", err)
	}

	sec := f.Section(ini.DefaultSection)

	boolKey := func(name string, dst *bool) {
		if !sec.HasKey(name) {
			return
		}
		v, err := sec.Key(name).Bool()
		if err != nil {
			log.Warn().Err(err).Str("key", name).Msg("ignoring legacy config value")
			return
		}
		*dst = v
	}
	strKey := func(name string, dst *string) {
		if !sec.HasKey(name) {
			return
		}
		if v := strings.Trim(sec.Key(name).String(), `"'`); v != "" {
			*dst = v
		}
	}

	strKey("default-runner", &vals.Launch.DefaultRunner)
	strKey("default-prefix", &vals.Launch.DefaultPrefix)
	boolKey("enable-logging", &vals.Launch.EnableLogging)
	boolKey("wayland-driver", &vals.Launch.WaylandDriver)
	boolKey("enable-hdr", &vals.Launch.EnableHDR)
	boolKey("enable-wow64", &vals.Launch.EnableWow64)
	boolKey("discrete-gpu", &vals.Launch.DiscreteGPU)

	return nil
}
