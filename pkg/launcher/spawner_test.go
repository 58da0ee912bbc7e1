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
	"testing"
	"time"

	"github.com/FaugusLauncher/faugus-core/pkg/helpers/command"
	"github.com/FaugusLauncher/faugus-core/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedEnviron() []string {
	return []string{"HOME=/home/u", "PATH=/usr/bin"}
}

func TestSpawn_CreatesDirsAndStarts(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	exec := &mocks.MockExecutor{}
	proc := mocks.NewFakeProcess(4242)
	exec.On("Start", mock.Anything, mock.Anything).Return(proc, nil)
	s := NewSpawner(fs, exec, WithEnviron(fixedEnviron))

	env := NewEnvironment()
	env.Set("WINEPREFIX", "/pfx")
	handle, err := s.Spawn(context.Background(), &SpawnSpec{
		Command: "/usr/bin/umu-run",
		Args:    []string{"/games/a.exe", "-dx11"},
		Env:     env,
		Dirs:    []string{"/pfx", "/cfg/logs", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 4242, handle.PID)

	for _, dir := range []string{"/pfx", "/cfg/logs"} {
		ok, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}

	spec := exec.LastSpec()
	assert.Equal(t, "/usr/bin/umu-run", spec.Name)
	assert.Equal(t, []string{"/games/a.exe", "-dx11"}, spec.Args)
	assert.Equal(t, []string{"HOME=/home/u", "PATH=/usr/bin", "WINEPREFIX=/pfx"}, spec.Env)
	assert.Nil(t, spec.Stdout)

	proc.Exit(nil)
	select {
	case <-handle.Exited:
	case <-time.After(5 * time.Second):
		t.Fatal("process was not reaped")
	}
}

func TestSpawn_Wrapper(t *testing.T) {
	t.Parallel()
	exec := &mocks.MockExecutor{}
	proc := mocks.NewFakeProcess(1)
	exec.On("Start", mock.Anything, mock.Anything).Return(proc, nil)
	s := NewSpawner(afero.NewMemMapFs(), exec, WithEnviron(fixedEnviron))
	t.Cleanup(func() { proc.Exit(nil) })

	_, err := s.Spawn(context.Background(), &SpawnSpec{
		Command: "/usr/bin/umu-run",
		Args:    []string{"/games/a.exe"},
		Wrapper: "/usr/bin/gamemoderun",
	})
	require.NoError(t, err)

	spec := exec.LastSpec()
	assert.Equal(t, "/usr/bin/gamemoderun", spec.Name)
	assert.Equal(t, []string{"/usr/bin/umu-run", "/games/a.exe"}, spec.Args)
}

func TestSpawn_DirectoryCreateFails(t *testing.T) {
	t.Parallel()
	exec := &mocks.MockExecutor{}
	s := NewSpawner(afero.NewReadOnlyFs(afero.NewMemMapFs()), exec, WithEnviron(fixedEnviron))

	_, err := s.Spawn(context.Background(), &SpawnSpec{
		Command: "/usr/bin/umu-run",
		Dirs:    []string{"/pfx"},
	})

	require.ErrorIs(t, err, ErrDirectoryCreate)
	assert.Contains(t, err.Error(), "/pfx")
	exec.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestSpawn_StartFails(t *testing.T) {
	t.Parallel()
	exec := &mocks.MockExecutor{}
	startErr := errors.New("exec format error")
	exec.On("Start", mock.Anything, mock.Anything).Return(nil, startErr)
	s := NewSpawner(afero.NewMemMapFs(), exec, WithEnviron(fixedEnviron))

	_, err := s.Spawn(context.Background(), &SpawnSpec{Command: "/usr/bin/umu-run"})

	require.ErrorIs(t, err, ErrSpawnFailed)
	require.ErrorIs(t, err, startErr)
	assert.Contains(t, err.Error(), "umu-run")
}

func TestSpawn_LogFile(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	exec := &mocks.MockExecutor{}
	proc := mocks.NewFakeProcess(7)
	exec.On("Start", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			spec, _ := args.Get(1).(command.Spec)
			_, _ = spec.Stdout.Write([]byte("wine: starting\n"))
		}).
		Return(proc, nil)
	s := NewSpawner(fs, exec, WithEnviron(fixedEnviron))

	handle, err := s.Spawn(context.Background(), &SpawnSpec{
		Command: "/usr/bin/umu-run",
		LogPath: "/cfg/logs/abc.log",
	})
	require.NoError(t, err)

	spec := exec.LastSpec()
	assert.NotNil(t, spec.Stdout)
	assert.Equal(t, spec.Stdout, spec.Stderr)

	proc.Exit(errors.New("exit status 1"))
	<-handle.Exited

	data, err := afero.ReadFile(fs, "/cfg/logs/abc.log")
	require.NoError(t, err)
	assert.Equal(t, "wine: starting\n", string(data))
}
