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

package procs

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// SystemSignaller sends SIGKILL.
type SystemSignaller struct{}

func (*SystemSignaller) Kill(pid int) error {
	err := unix.Kill(pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		log.Debug().Int("pid", pid).Msg("process already gone")
		return nil
	} else if err != nil {
		return fmt.Errorf("kill %d: %w", pid, err)
	}
	return nil
}
