//go:build !windows

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

package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Start(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("starts_command_and_reports_pid", func(t *testing.T) {
		t.Parallel()

		proc, err := executor.Start(context.Background(), Spec{Name: "true"})
		require.NoError(t, err)

		assert.Positive(t, proc.PID())
		assert.NoError(t, proc.Wait())
	})

	t.Run("passes_environment_and_output", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		proc, err := executor.Start(context.Background(), Spec{
			Name:   "sh",
			Args:   []string{"-c", "printf %s \"$FAUGUS_TEST\""},
			Env:    []string{"FAUGUS_TEST=hello"},
			Stdout: &out,
		})
		require.NoError(t, err)
		require.NoError(t, proc.Wait())

		assert.Equal(t, "hello", out.String())
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Start(context.Background(), Spec{
			Name: "nonexistent_command_that_should_not_exist_12345",
		})

		require.Error(t, err)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Start(context.Background(), Spec{})

		require.ErrorIs(t, err, ErrEmptyCommand)
	})

	t.Run("refuses_cancelled_context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := executor.Start(ctx, Spec{Name: "true"})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestExecutor_Interface(t *testing.T) {
	t.Parallel()

	var _ Executor = (*RealExecutor)(nil)
}
