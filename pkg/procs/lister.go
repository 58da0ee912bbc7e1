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
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemLister reads the host process table through gopsutil.
type SystemLister struct{}

// Snapshot lists every visible process. Processes that exit while the
// table is being read are skipped.
func (*SystemLister) Snapshot(ctx context.Context) ([]ProcessInfo, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	table := make([]ProcessInfo, 0, len(ps))
	for _, p := range ps {
		ppid, err := p.PpidWithContext(ctx)
		if err != nil {
			log.Trace().Err(err).Int32("pid", p.Pid).Msg("skipping process without parent")
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			name = ""
		}
		status, err := p.StatusWithContext(ctx)
		zombie := err == nil && slices.Contains(status, process.Zombie)
		var created time.Time
		if ms, err := p.CreateTimeWithContext(ctx); err == nil && ms > 0 {
			created = time.UnixMilli(ms)
		}

		table = append(table, ProcessInfo{
			PID:     int(p.Pid),
			PPID:    int(ppid),
			Name:    name,
			Zombie:  zombie,
			Created: created,
		})
	}
	return table, nil
}
