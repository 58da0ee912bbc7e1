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

// Package procs snapshots the OS process table and tears down process
// trees. A launched game forks wine, wineserver and friends which outlive
// the umu-run process, so stopping a game means killing the whole tree.
package procs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrSignalFailed is returned when one or more processes could not be
	// signalled.
	ErrSignalFailed = errors.New("failed to signal process")
	// ErrListFailed is returned when the process table can't be read.
	ErrListFailed = errors.New("failed to list processes")
	// ErrNotRunning is returned when a tracked pid has exited or now
	// belongs to a different process.
	ErrNotRunning = errors.New("process is not running")
)

// creationSlack absorbs the rounding in process creation times, which on
// Linux are derived from boot time with one second resolution.
const creationSlack = 5 * time.Second

// WineHelperBinaries are the processes wine leaves behind when a game
// exits uncleanly.
var WineHelperBinaries = []string{
	"wineserver",
	"wine64-preloader",
	"winedevice.exe",
	"plugplay.exe",
	"services.exe",
	"explorer.exe",
}

// ProcessInfo is one row of a process table snapshot.
type ProcessInfo struct {
	// Created is zero when the creation time couldn't be read.
	Created time.Time
	Name    string
	PID     int
	PPID    int
	Zombie  bool
}

// Lister takes process table snapshots.
type Lister interface {
	Snapshot(ctx context.Context) ([]ProcessInfo, error)
}

// Signaller force-kills a single process.
type Signaller interface {
	Kill(pid int) error
}

// Terminator kills process trees.
type Terminator struct {
	lister    Lister
	signaller Signaller
}

// Option configures a Terminator.
type Option func(*Terminator)

// WithLister replaces the process table source (for testing).
func WithLister(l Lister) Option {
	return func(t *Terminator) {
		t.lister = l
	}
}

// WithSignaller replaces the kill implementation (for testing).
func WithSignaller(s Signaller) Option {
	return func(t *Terminator) {
		t.signaller = s
	}
}

// NewTerminator returns a Terminator using the host process table.
func NewTerminator(opts ...Option) *Terminator {
	t := &Terminator{
		lister:    &SystemLister{},
		signaller: &SystemSignaller{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Collect returns root and all its descendants in kill order: every
// process comes after its children, and root comes last. Each pid appears
// once even if the table contains a cycle.
func Collect(table []ProcessInfo, root int) []int {
	children := make(map[int][]int, len(table))
	for _, p := range table {
		if p.PID == p.PPID {
			continue
		}
		children[p.PPID] = append(children[p.PPID], p.PID)
	}
	for _, kids := range children {
		slices.Sort(kids)
	}

	visited := make(map[int]struct{})
	order := make([]int, 0, 8)

	var walk func(pid int)
	walk = func(pid int) {
		if _, seen := visited[pid]; seen {
			return
		}
		visited[pid] = struct{}{}
		for _, child := range children[pid] {
			walk(child)
		}
		order = append(order, pid)
	}
	walk(root)

	return order
}

// Alive reports whether pid is in table and not a zombie. When startedAt
// is set the process must also have been created no later than startedAt,
// otherwise the pid has been reused since it was recorded.
func Alive(table []ProcessInfo, pid int, startedAt time.Time) bool {
	for _, p := range table {
		if p.PID != pid {
			continue
		}
		if p.Zombie {
			return false
		}
		if startedAt.IsZero() || p.Created.IsZero() {
			return true
		}
		return !p.Created.After(startedAt.Add(creationSlack))
	}
	return false
}

// Snapshot returns the current process table.
func (t *Terminator) Snapshot(ctx context.Context) ([]ProcessInfo, error) {
	table, err := t.lister.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}
	return table, nil
}

// Terminate kills rootPID and every descendant found in one snapshot of
// the process table. Children are killed before their parents. A failure
// to kill one process is logged and does not stop the others; all
// failures are returned joined together.
//
// Nothing is killed unless the snapshot shows rootPID is still the
// process started at startedAt (see Alive). A zero startedAt only checks
// that the pid exists.
func (t *Terminator) Terminate(ctx context.Context, rootPID int, startedAt time.Time) ([]int, error) {
	if rootPID <= 0 {
		return nil, fmt.Errorf("%w: invalid pid %d", ErrSignalFailed, rootPID)
	}

	table, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !Alive(table, rootPID, startedAt) {
		log.Info().Int("pid", rootPID).Time("started", startedAt).Msg("process already gone, nothing to kill")
		return nil, fmt.Errorf("%w: pid %d", ErrNotRunning, rootPID)
	}

	order := Collect(table, rootPID)
	log.Info().Int("pid", rootPID).Ints("tree", order).Msg("terminating process tree")

	return order, t.killAll(order)
}

// KillAllByName kills every process whose name is in names. It returns
// the pids signalled.
func (t *Terminator) KillAllByName(ctx context.Context, names []string) ([]int, error) {
	table, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var pids []int
	for _, p := range table {
		if slices.Contains(names, p.Name) {
			pids = append(pids, p.PID)
		}
	}
	if len(pids) == 0 {
		log.Debug().Strs("names", names).Msg("no matching processes to kill")
		return nil, nil
	}

	log.Info().Ints("pids", pids).Msg("killing processes by name")
	return pids, t.killAll(pids)
}

func (t *Terminator) killAll(pids []int) error {
	var errs []error
	for _, pid := range pids {
		if err := t.signaller.Kill(pid); err != nil {
			log.Warn().Err(err).Int("pid", pid).Msg("failed to kill process")
			errs = append(errs, fmt.Errorf("%w %d: %w", ErrSignalFailed, pid, err))
			continue
		}
		log.Debug().Int("pid", pid).Msg("sent kill to process")
	}
	return errors.Join(errs...)
}
