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

// Package envar parses the global environment override file (envar.txt).
// Each non-comment line is KEY=VALUE; malformed lines are reported and
// skipped so one typo never blocks a launch.
package envar

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Warning describes a line that was skipped.
type Warning struct {
	Text   string
	Reason string
	Line   int
}

func (w Warning) String() string {
	return fmt.Sprintf("Line %d: %s", w.Line, w.Reason)
}

func (w Warning) Error() string {
	return w.String()
}

// ValidKey reports whether name is usable as an environment variable name.
func ValidKey(name string) bool {
	return keyPattern.MatchString(name)
}

// ParseContent parses override file content. Later lines win over earlier
// ones for the same key. Values may contain '=' and may be empty.
func ParseContent(content string) (map[string]string, []Warning) {
	vars := make(map[string]string)
	var warnings []Warning

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			warnings = append(warnings, Warning{
				Line:   i + 1,
				Text:   line,
				Reason: fmt.Sprintf("No '=' separator found in '%s'", line),
			})
			continue
		}

		key = strings.TrimSpace(key)
		if !ValidKey(key) {
			warnings = append(warnings, Warning{
				Line: i + 1,
				Text: line,
				Reason: fmt.Sprintf(
					"Invalid env var key '%s': must match [A-Za-z_][A-Za-z0-9_]*", key,
				),
			})
			continue
		}

		vars[key] = strings.TrimSpace(value)
	}

	return vars, warnings
}

// Load reads and parses the override file at path. A missing or unreadable
// file yields an empty map; warnings are logged.
func Load(fsys afero.Fs, path string) map[string]string {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("failed to read env override file")
		}
		return map[string]string{}
	}

	vars, warnings := ParseContent(string(data))
	for _, w := range warnings {
		log.Warn().Str("path", path).Int("line", w.Line).Msg(w.Reason)
	}
	log.Debug().Int("count", len(vars)).Str("path", path).Msg("loaded env overrides")
	return vars
}
