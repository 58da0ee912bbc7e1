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
	"sync"

	"github.com/FaugusLauncher/faugus-core/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockExecutor is a testify mock for command.Executor.
//
// Example:
//
//	exec := &MockExecutor{}
//	exec.On("Start", mock.Anything, mock.Anything).Return(NewFakeProcess(4242), nil)
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Start(ctx context.Context, spec command.Spec) (command.Process, error) {
	args := m.Called(ctx, spec)
	if proc, ok := args.Get(0).(command.Process); ok {
		//nolint:wrapcheck // Mock returns are already wrapped by caller
		return proc, args.Error(1)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return nil, args.Error(1)
}

// LastSpec returns the spec passed to the most recent Start call.
func (m *MockExecutor) LastSpec() command.Spec {
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Method == "Start" {
			if spec, ok := m.Calls[i].Arguments.Get(1).(command.Spec); ok {
				return spec
			}
		}
	}
	return command.Spec{}
}

// FakeProcess is a command.Process whose Wait blocks until Exit is called.
type FakeProcess struct {
	err    error
	exited chan struct{}
	once   sync.Once
	pid    int
}

func NewFakeProcess(pid int) *FakeProcess {
	return &FakeProcess{pid: pid, exited: make(chan struct{})}
}

func (p *FakeProcess) PID() int {
	return p.pid
}

func (p *FakeProcess) Wait() error {
	<-p.exited
	return p.err
}

// Exit makes Wait return err. Later calls are ignored.
func (p *FakeProcess) Exit(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.exited)
	})
}
