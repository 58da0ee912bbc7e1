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

// Package command wraps os/exec process startup behind an interface so the
// spawner can be tested without starting real processes.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrEmptyCommand is returned when a Spec has no command name.
var ErrEmptyCommand = errors.New("empty command")

// Spec describes a process to start.
type Spec struct {
	// Stdout and Stderr default to the null device when nil.
	Stdout io.Writer
	Stderr io.Writer
	Name   string
	Dir    string
	Args   []string
	// Env is the complete child environment. A nil Env inherits the
	// current process environment unchanged.
	Env []string
}

// Process is a started child process.
type Process interface {
	// PID returns the OS process id.
	PID() int
	// Wait blocks until the process exits and releases its resources.
	Wait() error
}

// Executor starts processes.
type Executor interface {
	// Start starts the process described by spec and returns without
	// waiting for it. The context only bounds the start itself; the child
	// keeps running after ctx is cancelled.
	Start(ctx context.Context, spec Spec) (Process, error)
}

// RealExecutor starts real OS processes.
type RealExecutor struct{}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) PID() int {
	return p.cmd.Process.Pid
}

//nolint:wrapcheck // exit errors are returned as-is for callers to inspect
func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}

// Start starts the process in its own process group so signals aimed at
// the caller's terminal don't reach it.
func (*RealExecutor) Start(ctx context.Context, spec Spec) (Process, error) {
	if spec.Name == "" {
		return nil, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	//nolint:gosec,noctx // the child must outlive ctx
	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Env = spec.Env
	cmd.Dir = spec.Dir
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}
	return &execProcess{cmd: cmd}, nil
}
