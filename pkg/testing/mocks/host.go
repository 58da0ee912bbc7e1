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

package mocks

import (
	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/stretchr/testify/mock"
)

// FakeHost resolves binaries from a fixed table.
type FakeHost struct {
	Binaries map[string]string
	// UmuRunPath is returned by UmuRun when non-empty. A configured path
	// passed to UmuRun takes precedence.
	UmuRunPath string
}

func (h *FakeHost) FindBinary(name string) (string, bool) {
	path, ok := h.Binaries[name]
	return path, ok
}

func (h *FakeHost) UmuRun(configured string) (string, bool) {
	if configured != "" {
		return configured, true
	}
	return h.UmuRunPath, h.UmuRunPath != ""
}

// StaticSettings is a launch settings provider that never changes.
type StaticSettings struct {
	Launch config.Launch
}

func (s *StaticSettings) LaunchSettings() config.Launch {
	return s.Launch
}

// MockRunnerResolver is a testify mock for launcher.RunnerResolver.
type MockRunnerResolver struct {
	mock.Mock
}

func (m *MockRunnerResolver) Resolve(id string) (string, error) {
	args := m.Called(id)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.String(0), args.Error(1)
}
