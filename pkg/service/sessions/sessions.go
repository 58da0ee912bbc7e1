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

// Package sessions tracks launched games from start to stop. It ties the
// launcher, the process registry and the tree terminator together.
//
// Liveness is only checked when asked for; nothing watches running games.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FaugusLauncher/faugus-core/pkg/games"
	"github.com/FaugusLauncher/faugus-core/pkg/helpers/syncutil"
	"github.com/FaugusLauncher/faugus-core/pkg/launcher"
	"github.com/FaugusLauncher/faugus-core/pkg/procs"
	"github.com/FaugusLauncher/faugus-core/pkg/service/registry"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrNotTracked is returned for titles with no tracked process.
var ErrNotTracked = errors.New("game is not running")

// State of a tracked launch.
type State int

const (
	StateSpawning State = iota
	StateRunning
	StateTerminating
	StateTerminated
	// StateExitedExternally means the game's root process is gone but it
	// was never stopped through Faugus.
	StateExitedExternally
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateTerminated:
		return "terminated"
	case StateExitedExternally:
		return "exited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Launcher starts games.
type Launcher interface {
	Launch(ctx context.Context, game games.Game) (launcher.Launched, error)
}

// Registry persists tracked processes.
type Registry interface {
	Record(p registry.TrackedProcess) error
	Lookup(title string) (registry.TrackedProcess, error)
	Forget(title string) error
	List() []registry.TrackedProcess
	PushRecent(title string) error
	Recent() []string
}

// Terminator kills process trees.
type Terminator interface {
	Terminate(ctx context.Context, rootPID int, startedAt time.Time) ([]int, error)
	KillAllByName(ctx context.Context, names []string) ([]int, error)
	Snapshot(ctx context.Context) ([]procs.ProcessInfo, error)
}

// Session is a tracked launch and its last known state.
type Session struct {
	Process registry.TrackedProcess
	State   State
}

// Stopped is the outcome of Stop.
type Stopped struct {
	Process registry.TrackedProcess
	// State is StateTerminated, or StateExitedExternally when the game
	// had already exited and nothing was killed.
	State State
	// Played is zero when the start time isn't known or the game exited
	// on its own.
	Played time.Duration
}

// Manager runs the launch and stop flows.
type Manager struct {
	clock    clockwork.Clock
	launcher Launcher
	registry Registry
	term     Terminator
	// transient states of launches and stops in progress in this process
	pending map[string]State
	mu      syncutil.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for start times and session durations.
func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

func NewManager(l Launcher, reg Registry, term Terminator, opts ...Option) *Manager {
	m := &Manager{
		clock:    clockwork.NewRealClock(),
		launcher: l,
		registry: reg,
		term:     term,
		pending:  make(map[string]State),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) setPending(title string, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Debug().Str("title", title).Stringer("state", s).Msg("session state")
	m.pending[title] = s
}

func (m *Manager) clearPending(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, title)
}

func (m *Manager) pendingState(title string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.pending[title]
	return s, ok
}

// Launch starts game and tracks it, replacing any earlier entry with the
// same title. If the game started but tracking failed, the running
// session is returned together with the error; the game is left running.
//
//nolint:gocritic // game is passed through to the launcher by value
func (m *Manager) Launch(ctx context.Context, game games.Game) (Session, error) {
	m.setPending(game.Title, StateSpawning)
	defer m.clearPending(game.Title)

	launched, err := m.launcher.Launch(ctx, game)
	if err != nil {
		return Session{}, err
	}

	proc := registry.TrackedProcess{
		GameTitle: launched.Game.Title,
		GameID:    launched.Game.GameID,
		MainPID:   launched.PID,
		StartedAt: m.clock.Now(),
	}
	session := Session{Process: proc, State: StateRunning}

	var errs []error
	if err := m.registry.Forget(proc.GameTitle); err != nil {
		errs = append(errs, err)
	}
	if err := m.registry.Record(proc); err != nil {
		errs = append(errs, err)
	}
	if err := m.registry.PushRecent(proc.GameTitle); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		err := fmt.Errorf("%s is running as pid %d but could not be tracked: %w",
			proc.GameTitle, proc.MainPID, errors.Join(errs...))
		log.Error().Err(err).Msg("failed to track launched game")
		return session, err
	}

	log.Info().Str("title", proc.GameTitle).Int("pid", proc.MainPID).Msg("game launched")
	return session, nil
}

// Stop kills the game's process tree and stops tracking it. A pid that
// has exited, or has since been reused by another process, is not
// touched. Kill failures are returned but the entry is forgotten
// regardless. If the process table can't be read nothing is killed and
// the entry is kept.
func (m *Manager) Stop(ctx context.Context, title string) (Stopped, error) {
	proc, err := m.registry.Lookup(title)
	if errors.Is(err, registry.ErrNotFound) {
		return Stopped{}, fmt.Errorf("%w: %s", ErrNotTracked, title)
	} else if err != nil {
		return Stopped{}, fmt.Errorf("failed to look up %s: %w", title, err)
	}

	m.setPending(title, StateTerminating)
	defer m.clearPending(title)

	stopped := Stopped{Process: proc, State: StateTerminated}

	_, termErr := m.term.Terminate(ctx, proc.MainPID, proc.StartedAt)
	switch {
	case errors.Is(termErr, procs.ErrListFailed):
		return Stopped{}, fmt.Errorf("failed to stop %s: %w", title, termErr)
	case errors.Is(termErr, procs.ErrNotRunning):
		stopped.State = StateExitedExternally
		termErr = nil
		log.Info().Str("title", title).Int("pid", proc.MainPID).Msg("game had already exited")
	case termErr != nil:
		log.Warn().Err(termErr).Str("title", title).Msg("some processes could not be killed")
	}

	if stopped.State == StateTerminated {
		log.Info().Str("title", title).Stringer("state", StateTerminated).Msg("game stopped")
		if !proc.StartedAt.IsZero() {
			stopped.Played = m.clock.Since(proc.StartedAt)
		}
	}

	if err := m.registry.Forget(title); err != nil {
		return stopped, errors.Join(termErr, err)
	}
	if termErr != nil {
		return stopped, fmt.Errorf("failed to stop %s: %w", title, termErr)
	}
	return stopped, nil
}

// Status reports the state of a tracked title, checking liveness now.
func (m *Manager) Status(ctx context.Context, title string) (Session, error) {
	proc, err := m.registry.Lookup(title)
	if errors.Is(err, registry.ErrNotFound) {
		return Session{}, fmt.Errorf("%w: %s", ErrNotTracked, title)
	} else if err != nil {
		return Session{}, fmt.Errorf("failed to look up %s: %w", title, err)
	}
	table, err := m.term.Snapshot(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("failed to check %s: %w", title, err)
	}
	return m.session(table, proc), nil
}

// List returns every tracked launch with its current state, checked
// against a single process table snapshot.
func (m *Manager) List(ctx context.Context) ([]Session, error) {
	tracked := m.registry.List()
	if len(tracked) == 0 {
		return []Session{}, nil
	}
	table, err := m.term.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check tracked games: %w", err)
	}
	sessions := make([]Session, 0, len(tracked))
	for _, proc := range tracked {
		sessions = append(sessions, m.session(table, proc))
	}
	return sessions, nil
}

// Prune forgets tracked launches whose process has exited and returns
// their titles.
func (m *Manager) Prune(ctx context.Context) ([]string, error) {
	sessions, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var pruned []string
	for _, s := range sessions {
		if s.State != StateExitedExternally {
			continue
		}
		if err := m.registry.Forget(s.Process.GameTitle); err != nil {
			return pruned, err
		}
		pruned = append(pruned, s.Process.GameTitle)
	}
	return pruned, nil
}

// Recent returns recently launched titles, most recent first.
func (m *Manager) Recent() []string {
	return m.registry.Recent()
}

// KillAllWine kills every wine helper process on the host, tracked or
// not. It is a last resort for a wedged wineserver and will also kill
// other games' helpers.
func (m *Manager) KillAllWine(ctx context.Context) ([]int, error) {
	log.Warn().Strs("names", procs.WineHelperBinaries).Msg("killing all wine processes")
	pids, err := m.term.KillAllByName(ctx, procs.WineHelperBinaries)
	if err != nil {
		return pids, fmt.Errorf("failed to kill wine processes: %w", err)
	}
	return pids, nil
}

func (m *Manager) session(table []procs.ProcessInfo, proc registry.TrackedProcess) Session {
	if s, ok := m.pendingState(proc.GameTitle); ok {
		return Session{Process: proc, State: s}
	}
	state := StateRunning
	if !procs.Alive(table, proc.MainPID, proc.StartedAt) {
		state = StateExitedExternally
	}
	return Session{Process: proc, State: state}
}
