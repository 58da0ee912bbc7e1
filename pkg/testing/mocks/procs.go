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
	"context"

	"github.com/FaugusLauncher/faugus-core/pkg/procs"
	"github.com/stretchr/testify/mock"
)

// MockLister is a testify mock for procs.Lister.
type MockLister struct {
	mock.Mock
}

func (m *MockLister) Snapshot(ctx context.Context) ([]procs.ProcessInfo, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).([]procs.ProcessInfo)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return table, args.Error(1)
}

// MockSignaller is a testify mock for procs.Signaller.
type MockSignaller struct {
	mock.Mock
}

func (m *MockSignaller) Kill(pid int) error {
	args := m.Called(pid)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}

// KilledPIDs returns the pids passed to Kill, in call order.
func (m *MockSignaller) KilledPIDs() []int {
	var pids []int
	for _, c := range m.Calls {
		if c.Method == "Kill" {
			pids = append(pids, c.Arguments.Int(0))
		}
	}
	return pids
}
