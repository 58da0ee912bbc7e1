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

package proton

import (
	"path/filepath"
	"testing"

	"github.com/FaugusLauncher/faugus-core/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customRoot = "/custom/compat"
	steamRoot  = "/home/user/.steam/steam/compatibilitytools.d"
)

func newTestResolver(t *testing.T) (*Resolver, *helpers.FSHelper) {
	t.Helper()
	h := helpers.NewMemoryFS()
	require.NoError(t, h.Fs.MkdirAll(customRoot, 0o755))
	require.NoError(t, h.Fs.MkdirAll(steamRoot, 0o755))
	return NewResolver(h.Fs, []string{customRoot, steamRoot}), h
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	path, err := r.Resolve("")

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestResolve_Invalid(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	_, err := r.Resolve("../../bin")

	require.ErrorIs(t, err, ErrRunnerInvalid)
}

func TestResolve_ExactName(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	path, err := r.Resolve("GE-Proton9-20")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(steamRoot, "GE-Proton9-20"), path)
}

func TestResolve_FirstRootWins(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)
	_, err = h.CreateRunner(customRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	path, err := r.Resolve("GE-Proton9-20")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(customRoot, "GE-Proton9-20"), path)
}

func TestResolve_IgnoresNonRunnerDirs(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	require.NoError(t, h.Fs.MkdirAll(filepath.Join(steamRoot, "GE-Proton9-20"), 0o755))

	_, err := r.Resolve("GE-Proton9-20")

	require.ErrorIs(t, err, ErrRunnerNotFound)
}

func TestResolve_ToolManifestMarker(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	require.NoError(t, h.WriteFile(filepath.Join(steamRoot, "Luxtorpeda", "toolmanifest.vdf"), []byte(`"manifest" {}`)))

	path, err := r.Resolve("Luxtorpeda")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(steamRoot, "Luxtorpeda"), path)
}

func TestResolve_DisplayName(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "proton_ge_custom", "Proton GE Custom")
	require.NoError(t, err)

	path, err := r.Resolve("Proton GE Custom")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(steamRoot, "proton_ge_custom"), path)
}

func TestResolve_LatestAlias(t *testing.T) {
	t.Parallel()

	t.Run("install_dir_preferred", func(t *testing.T) {
		t.Parallel()
		r, h := newTestResolver(t)
		_, err := h.CreateRunner(steamRoot, "GE-Proton Latest", "")
		require.NoError(t, err)
		_, err = h.CreateRunner(steamRoot, "GE-Proton10-1", "")
		require.NoError(t, err)

		path, err := r.Resolve("GE-Proton")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(steamRoot, "GE-Proton Latest"), path)
	})

	t.Run("highest_version", func(t *testing.T) {
		t.Parallel()
		r, h := newTestResolver(t)
		for _, name := range []string{"GE-Proton9-20", "GE-Proton10-1", "GE-Proton9-7", "Proton-EM-10.0-30"} {
			_, err := h.CreateRunner(steamRoot, name, "")
			require.NoError(t, err)
		}

		path, err := r.Resolve("GE-Proton")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(steamRoot, "GE-Proton10-1"), path)

		path, err = r.Resolve("GE-Proton Latest")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(steamRoot, "GE-Proton10-1"), path)

		path, err = r.Resolve("Proton-EM")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(steamRoot, "Proton-EM-10.0-30"), path)
	})

	t.Run("no_family_installed", func(t *testing.T) {
		t.Parallel()
		r, _ := newTestResolver(t)

		_, err := r.Resolve("UMU-Proton")

		require.ErrorIs(t, err, ErrRunnerNotFound)
	})
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	first, err := r.Resolve("GE-Proton")
	require.NoError(t, err)
	second, err := r.Resolve("GE-Proton")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_NotFoundSuggestion(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	_, err = r.Resolve("GE-Proton9-2O")

	require.ErrorIs(t, err, ErrRunnerNotFound)
	assert.Contains(t, err.Error(), `did you mean "GE-Proton9-20"?`)

	_, err = r.Resolve("Wine-Staging")
	require.ErrorIs(t, err, ErrRunnerNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestInstalled(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "GE-Proton9-20 (custom)")
	require.NoError(t, err)
	_, err = h.CreateRunner(customRoot, "Proton-EM Latest", "")
	require.NoError(t, err)
	_, err = h.CreateRunner(customRoot, "GE-Proton9-20", "")
	require.NoError(t, err)
	require.NoError(t, h.WriteFile(filepath.Join(steamRoot, "README"), []byte("x")))
	require.NoError(t, h.Fs.MkdirAll(filepath.Join(steamRoot, "empty"), 0o755))

	runners := r.Installed()

	require.Len(t, runners, 2)
	assert.Equal(t, "GE-Proton9-20", runners[0].Name)
	assert.Equal(t, filepath.Join(customRoot, "GE-Proton9-20"), runners[0].Path)
	assert.Equal(t, "GE-Proton", runners[0].Family)
	assert.Equal(t, "Proton-EM Latest", runners[1].Name)
	assert.Equal(t, "Proton-EM", runners[1].Family)
}

func TestInstalled_DisplayNameFromManifest(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "GE-Proton 9-20")
	require.NoError(t, err)

	runners := r.Installed()

	require.Len(t, runners, 1)
	assert.Equal(t, "GE-Proton 9-20", runners[0].DisplayName)
}

func TestInstalled_MissingRoots(t *testing.T) {
	t.Parallel()
	r := NewResolver(afero.NewMemMapFs(), []string{"/nope", "/also/nope"})

	assert.Empty(t, r.Installed())
}

func TestIsInstalled(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	assert.True(t, r.IsInstalled("GE-Proton9-20"))
	assert.False(t, r.IsInstalled("GE-Proton9-21"))
	assert.False(t, r.IsInstalled(""))
	assert.False(t, r.IsInstalled("../compatibilitytools.d/GE-Proton9-20"))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	r, h := newTestResolver(t)
	_, err := h.CreateRunner(steamRoot, "GE-Proton9-20", "")
	require.NoError(t, err)

	require.NoError(t, r.Delete("GE-Proton9-20"))

	assert.False(t, h.FileExists(filepath.Join(steamRoot, "GE-Proton9-20")))
	assert.True(t, h.FileExists(steamRoot))
	require.ErrorIs(t, r.Delete("GE-Proton9-20"), ErrRunnerNotFound)
	require.ErrorIs(t, r.Delete(".."), ErrRunnerInvalid)
	require.ErrorIs(t, r.Delete(""), ErrRunnerInvalid)
}

func TestNewerThan(t *testing.T) {
	t.Parallel()

	assert.True(t, newerThan("GE-Proton10-1", "GE-Proton9-20"))
	assert.True(t, newerThan("GE-Proton9-20", "GE-Proton9-7"))
	assert.False(t, newerThan("GE-Proton9-7", "GE-Proton9-20"))
	assert.True(t, newerThan("GE-Proton1", "GE-Proton-nightly"))
	assert.True(t, newerThan("GE-Proton-b", "GE-Proton-a"))
}
