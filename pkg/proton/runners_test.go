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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "empty", id: ""},
		{name: "plain", id: "GE-Proton9-20"},
		{name: "with_space", id: "GE-Proton Latest"},
		{name: "single_dot_inside", id: "Proton-EM-10.0-2"},
		{name: "dot", id: ".", wantErr: true},
		{name: "dotdot", id: "..", wantErr: true},
		{name: "traversal", id: "../../etc", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "backslash", id: `a\b`, wantErr: true},
		{name: "nul", id: "a\x00b", wantErr: true},
		{name: "absolute", id: "/usr", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.id)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrRunnerInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigFor(t *testing.T) {
	t.Parallel()

	cfg, ok := ConfigFor("GE-Proton")
	require.True(t, ok)
	assert.Equal(t, "GE-Proton Latest", cfg.InstallDir)

	cfg, ok = ConfigFor("Proton-EM Latest")
	require.True(t, ok)
	assert.Equal(t, "Proton-EM", cfg.Label)

	_, ok = ConfigFor("Wine-Staging")
	assert.False(t, ok)
}

func TestFamilyOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GE-Proton", familyOf("GE-Proton9-20"))
	assert.Equal(t, "GE-Proton", familyOf("GE-Proton Latest"))
	assert.Equal(t, "Proton-EM", familyOf("Proton-EM-10.0-2"))
	assert.Equal(t, "UMU-Proton", familyOf("UMU-Latest"))
	assert.Empty(t, familyOf("Luxtorpeda"))
}

// TestPropertyValidateRejectsSeparators checks that any id containing a
// separator, NUL or ".." is rejected.
func TestPropertyValidateRejectsSeparators(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		left := rapid.StringMatching(`[A-Za-z0-9 _-]{0,8}`).Draw(t, "left")
		right := rapid.StringMatching(`[A-Za-z0-9 _-]{0,8}`).Draw(t, "right")
		bad := rapid.SampledFrom([]string{"/", `\`, "\x00", ".."}).Draw(t, "bad")

		if Validate(left+bad+right) == nil {
			t.Fatalf("accepted %q", left+bad+right)
		}
		if Validate(left+right) != nil && left+right != "" {
			t.Fatalf("rejected %q", left+right)
		}
	})
}
