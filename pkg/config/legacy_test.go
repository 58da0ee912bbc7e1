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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyINI = `close-onlaunch=False
default-prefix="/home/user/Faugus"
mangohud=False
default-runner="GE-Proton9-20"
discrete-gpu=True
enable-logging=True
wayland-driver=False
enable-hdr=True
enable-wow64=False
interface-mode=List
language=
`

func TestImportLegacy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), LegacyCfgFile)
	require.NoError(t, os.WriteFile(path, []byte(legacyINI), 0o600))

	vals := BaseDefaults
	require.NoError(t, ImportLegacy(path, &vals))

	assert.Equal(t, "GE-Proton9-20", vals.Launch.DefaultRunner)
	assert.Equal(t, "/home/user/Faugus", vals.Launch.DefaultPrefix)
	assert.True(t, vals.Launch.DiscreteGPU)
	assert.True(t, vals.Launch.EnableLogging)
	assert.True(t, vals.Launch.EnableHDR)
	assert.False(t, vals.Launch.WaylandDriver)
	assert.False(t, vals.Launch.EnableWow64)
}

func TestImportLegacy_BadBoolKeepsDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), LegacyCfgFile)
	require.NoError(t, os.WriteFile(path, []byte("enable-hdr=maybe\n"), 0o600))

	vals := BaseDefaults
	vals.Launch.EnableHDR = true
	require.NoError(t, ImportLegacy(path, &vals))

	assert.True(t, vals.Launch.EnableHDR)
}

func TestImportLegacy_MissingFile(t *testing.T) {
	t.Parallel()

	vals := BaseDefaults
	err := ImportLegacy(filepath.Join(t.TempDir(), "nope.ini"), &vals)

	require.Error(t, err)
}

//nolint:paralleltest // t.Setenv
func TestNewConfig_ImportsLegacyOnce(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyCfgFile), []byte(legacyINI), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, "GE-Proton9-20", cfg.LaunchSettings().DefaultRunner)
	assert.FileExists(t, filepath.Join(dir, CfgFile))

	// config.toml now exists, so edits to the ini are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyCfgFile), []byte("default-runner=Other\n"), 0o600))
	again, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "GE-Proton9-20", again.LaunchSettings().DefaultRunner)
}
