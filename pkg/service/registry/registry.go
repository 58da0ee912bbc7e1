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

// Package registry persists the launches Faugus is tracking and the list
// of recently played titles, so both survive a restart.
//
// Both files are rewritten whole on every change. Access from one process
// is serialized by a mutex per file; nothing guards against a second
// process writing the same files.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/FaugusLauncher/faugus-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// MaxRecent is the length of the recently played list.
const MaxRecent = 10

var (
	// ErrNotFound is returned by Lookup for titles that aren't tracked.
	ErrNotFound = errors.New("process not found")
	// ErrRegistryIO is returned when a registry file can't be written.
	ErrRegistryIO = errors.New("registry io failed")
)

// TrackedProcess is a launched game. UmuPID is never filled in at launch;
// the tree terminator reaches umu-run's children through MainPID.
type TrackedProcess struct {
	StartedAt time.Time `json:"started_at,omitzero"`
	UmuPID    *int      `json:"umu_pid"`
	GameTitle string    `json:"game_title"`
	GameID    string    `json:"gameid,omitempty"`
	MainPID   int       `json:"main_pid"`
}

// Registry stores tracked processes in a JSON file and the recent titles
// in a text file.
type Registry struct {
	fs          afero.Fs
	runningPath string
	recentPath  string
	runningMu   syncutil.Mutex
	recentMu    syncutil.Mutex
}

func New(fsys afero.Fs, runningPath, recentPath string) *Registry {
	return &Registry{
		fs:          fsys,
		runningPath: runningPath,
		recentPath:  recentPath,
	}
}

// Record appends p. Titles are not de-duplicated; call Forget first for
// single-instance semantics.
func (r *Registry) Record(p TrackedProcess) error {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	procs := r.readRunning()
	procs = append(procs, p)
	if err := r.writeRunning(procs); err != nil {
		return err
	}
	log.Debug().Str("title", p.GameTitle).Int("pid", p.MainPID).Msg("recorded process")
	return nil
}

// Lookup returns the most recently recorded process with this title.
func (r *Registry) Lookup(title string) (TrackedProcess, error) {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	procs := r.readRunning()
	for i := len(procs) - 1; i >= 0; i-- {
		if procs[i].GameTitle == title {
			return procs[i], nil
		}
	}
	return TrackedProcess{}, fmt.Errorf("%w: %s", ErrNotFound, title)
}

// Forget removes every process with this title. Forgetting an untracked
// title is not an error.
func (r *Registry) Forget(title string) error {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	procs := r.readRunning()
	kept := slices.DeleteFunc(slices.Clone(procs), func(p TrackedProcess) bool {
		return p.GameTitle == title
	})
	if len(kept) == len(procs) {
		return nil
	}
	if err := r.writeRunning(kept); err != nil {
		return err
	}
	log.Debug().Str("title", title).Msg("forgot process")
	return nil
}

// List returns all tracked processes in the order they were recorded.
func (r *Registry) List() []TrackedProcess {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()
	return r.readRunning()
}

// PushRecent moves title to the front of the recent list.
func (r *Registry) PushRecent(title string) error {
	r.recentMu.Lock()
	defer r.recentMu.Unlock()

	titles := pushFront(r.readRecent(), title)
	data := strings.Join(titles, "\n") + "\n"
	if err := r.writeAtomic(r.recentPath, []byte(data)); err != nil {
		return err
	}
	return nil
}

// Recent returns the recently played titles, most recent first.
func (r *Registry) Recent() []string {
	r.recentMu.Lock()
	defer r.recentMu.Unlock()
	return r.readRecent()
}

func pushFront(titles []string, title string) []string {
	out := make([]string, 0, MaxRecent)
	out = append(out, title)
	for _, t := range titles {
		if t == title {
			continue
		}
		if len(out) == MaxRecent {
			break
		}
		out = append(out, t)
	}
	return out
}

func (r *Registry) readRunning() []TrackedProcess {
	data, ok := r.read(r.runningPath)
	if !ok || len(strings.TrimSpace(string(data))) == 0 {
		return []TrackedProcess{}
	}

	var procs []TrackedProcess
	if err := json.Unmarshal(data, &procs); err != nil {
		log.Warn().Err(err).Str("path", r.runningPath).Msg("running games file is corrupt, treating as empty")
		return []TrackedProcess{}
	}
	return procs
}

func (r *Registry) writeRunning(procs []TrackedProcess) error {
	data, err := json.MarshalIndent(procs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal running games: %w", ErrRegistryIO, err)
	}
	return r.writeAtomic(r.runningPath, data)
}

func (r *Registry) readRecent() []string {
	data, ok := r.read(r.recentPath)
	if !ok {
		return []string{}
	}

	titles := make([]string, 0, MaxRecent)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || slices.Contains(titles, line) {
			continue
		}
		titles = append(titles, line)
	}
	return titles
}

// read returns the file content, or false if it is missing or unreadable.
func (r *Registry) read(path string) ([]byte, bool) {
	data, err := afero.ReadFile(r.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	} else if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read registry file, treating as empty")
		return nil, false
	}
	return data, true
}

// writeAtomic writes data to a temp file next to path and renames it into
// place so a crash never leaves a half-written file.
func (r *Registry) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := r.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrRegistryIO, dir, err)
	}

	tmp, err := afero.TempFile(r.fs, dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrRegistryIO, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", ErrRegistryIO, path, err)
	}

	if err := r.fs.Rename(tmpName, path); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %w", ErrRegistryIO, path, err)
	}
	return nil
}
