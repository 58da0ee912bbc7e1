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

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/FaugusLauncher/faugus-core/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	// ErrDirectoryCreate is returned when the prefix or logs directory
	// can't be created. Nothing has been started when it is returned.
	ErrDirectoryCreate = errors.New("failed to create directory")
	// ErrSpawnFailed is returned when the OS refused to start the process.
	ErrSpawnFailed = errors.New("failed to spawn process")
)

// SpawnSpec describes one launch.
type SpawnSpec struct {
	// Env is applied on top of the inherited environment.
	Env     *Environment
	Command string
	// Wrapper, if set, is run with Command and Args as its arguments.
	Wrapper string
	// LogPath receives the child's stdout and stderr when set.
	LogPath string
	Args    []string
	// Dirs are created before anything is started.
	Dirs []string
}

// Handle identifies a started process.
type Handle struct {
	// Exited is closed once the process has exited and been reaped.
	Exited <-chan struct{}
	PID    int
}

// Spawner starts launch commands.
type Spawner struct {
	fs      afero.Fs
	exec    command.Executor
	environ func() []string
}

// SpawnerOption configures a Spawner.
type SpawnerOption func(*Spawner)

// WithEnviron replaces the inherited environment (for testing).
func WithEnviron(fn func() []string) SpawnerOption {
	return func(s *Spawner) {
		s.environ = fn
	}
}

func NewSpawner(fsys afero.Fs, exec command.Executor, opts ...SpawnerOption) *Spawner {
	s := &Spawner{
		fs:      fsys,
		exec:    exec,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn creates the spec's directories and starts the command. It returns
// as soon as the process has been started; the child is reaped in the
// background and keeps running after ctx is done.
func (s *Spawner) Spawn(ctx context.Context, spec *SpawnSpec) (Handle, error) {
	for _, dir := range spec.Dirs {
		if dir == "" {
			continue
		}
		if err := s.fs.MkdirAll(dir, 0o750); err != nil {
			return Handle{}, fmt.Errorf("%w %s: %w", ErrDirectoryCreate, dir, err)
		}
	}

	name, args := spec.Command, spec.Args
	if spec.Wrapper != "" {
		name = spec.Wrapper
		args = append([]string{spec.Command}, spec.Args...)
	}

	env := NewEnvironment()
	if spec.Env != nil {
		env = spec.Env
	}

	var logFile afero.File
	cmdSpec := command.Spec{
		Name: name,
		Args: args,
		Env:  env.Merge(s.environ()),
	}
	if spec.LogPath != "" {
		f, err := s.openLog(spec.LogPath)
		if err != nil {
			log.Warn().Err(err).Str("path", spec.LogPath).Msg("failed to open game log, output discarded")
		} else {
			logFile = f
			cmdSpec.Stdout = f
			cmdSpec.Stderr = f
		}
	}

	proc, err := s.exec.Start(ctx, cmdSpec)
	if err != nil {
		closeLog(logFile)
		return Handle{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, name, err)
	}

	pid := proc.PID()
	log.Info().
		Str("command", name).
		Strs("args", args).
		Int("env", env.Len()).
		Int("pid", pid).
		Msg("spawned process")

	exited := make(chan struct{})
	go reap(proc, logFile, exited)

	return Handle{PID: pid, Exited: exited}, nil
}

func (s *Spawner) openLog(path string) (afero.File, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func reap(proc command.Process, logFile io.Closer, exited chan<- struct{}) {
	defer close(exited)
	err := proc.Wait()
	closeLog(logFile)
	if err != nil {
		log.Info().Err(err).Int("pid", proc.PID()).Msg("process exited")
		return
	}
	log.Info().Int("pid", proc.PID()).Msg("process exited cleanly")
}

func closeLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing game log")
	}
}
