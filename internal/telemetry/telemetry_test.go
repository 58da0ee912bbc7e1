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

package telemetry

import (
	"testing"

	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty_string",
			input:    "",
			expected: "",
		},
		{
			name:     "no_username_in_path",
			input:    "/usr/bin/umu-run",
			expected: "/usr/bin/umu-run",
		},
		{
			name:     "prefix_path",
			input:    "/home/alice/Faugus/default/drive_c/Games/game.exe",
			expected: "/home/<user>/Faugus/default/drive_c/Games/game.exe",
		},
		{
			name:     "linux_home_path_uppercase",
			input:    "/Home/Alice/.config/faugus-launcher/games.json",
			expected: "/home/<user>/.config/faugus-launcher/games.json",
		},
		{
			name:     "windows_path_inside_prefix_message",
			input:    "c:\\Users\\steamuser\\AppData\\Local\\game",
			expected: "C:\\Users\\<user>\\AppData\\Local\\game",
		},
		{
			name:     "error_message_with_path",
			input:    "failed to create directory /home/bob/Faugus/x: permission denied",
			expected: "failed to create directory /home/<user>/Faugus/x: permission denied",
		},
		{
			name:     "multiple_paths_in_message",
			input:    "runner /home/alice/.steam/steam/compatibilitytools.d/GE-Proton for /home/bob/pfx",
			expected: "runner /home/<user>/.steam/steam/compatibilitytools.d/GE-Proton for /home/<user>/pfx",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "alices-laptop",
		Message:    "launch failed: /home/alice/pfx",
		Extra:      map[string]any{"path": "/home/alice/game.exe", "pid": 42},
		Exception: []sentry.Exception{{
			Value: "open /home/alice/.config/faugus-launcher/envar.txt",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/alice/src/faugus-core/pkg/launcher/launcher.go",
				Filename: "launcher.go",
			}}},
		}},
	}

	got := sanitizeEvent(event)

	assert.Empty(t, got.ServerName)
	assert.Equal(t, "launch failed: /home/<user>/pfx", got.Message)
	assert.Equal(t, "/home/<user>/game.exe", got.Extra["path"])
	assert.Equal(t, 42, got.Extra["pid"])
	assert.Equal(t, "open /home/<user>/.config/faugus-launcher/envar.txt", got.Exception[0].Value)
	assert.Equal(t, "/home/<user>/src/faugus-core/pkg/launcher/launcher.go",
		got.Exception[0].Stacktrace.Frames[0].AbsPath)
}

func TestInit_Disabled(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(config.ErrorReporting{}, "test"))
	assert.False(t, Enabled())
	Close()
}

func TestInit_EnabledWithoutDSN(t *testing.T) {
	t.Parallel()

	err := Init(config.ErrorReporting{Enabled: true}, "test")

	require.ErrorIs(t, err, ErrNoDSN)
	assert.False(t, Enabled())
}
