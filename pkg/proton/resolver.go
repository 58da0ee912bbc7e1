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

package proton

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/hashicorp/go-version"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	compatToolManifest = "compatibilitytool.vdf"
	toolManifest       = "toolmanifest.vdf"
	protonScript       = "proton"

	// minSuggestSimilarity is the Jaro-Winkler score a runner name needs
	// to be offered as a suggestion.
	minSuggestSimilarity = 0.8
)

var versionPattern = regexp.MustCompile(`\d+(?:[.-]\d+)*`)

// Runner is an installed runner directory.
type Runner struct {
	Name        string
	DisplayName string
	Path        string
	Family      string
}

// Resolver looks runners up in an ordered list of root directories.
type Resolver struct {
	fs    afero.Fs
	roots []string
}

// NewResolver returns a Resolver searching roots in order. Earlier roots
// win when the same runner name exists in several.
func NewResolver(fsys afero.Fs, roots []string) *Resolver {
	return &Resolver{fs: fsys, roots: roots}
}

// Roots returns the directories searched, in order.
func (r *Resolver) Roots() []string {
	return r.roots
}

// Resolve returns the directory for runner id. It checks, in order, an
// exact directory name, a compatibilitytool.vdf display name and a
// family's "latest" alias. An empty id resolves to "".
func (r *Resolver) Resolve(id string) (string, error) {
	if err := Validate(id); err != nil {
		return "", err
	}
	if id == "" {
		return "", nil
	}

	for _, root := range r.roots {
		path := filepath.Join(root, id)
		if r.looksLikeRunner(path) {
			log.Debug().Str("runner", id).Str("path", path).Msg("resolved runner by name")
			return path, nil
		}
	}

	installed := r.Installed()

	for _, rn := range installed {
		if rn.DisplayName != "" && rn.DisplayName == id {
			log.Debug().Str("runner", id).Str("path", rn.Path).Msg("resolved runner by display name")
			return rn.Path, nil
		}
	}

	if cfg, ok := ConfigFor(id); ok {
		if path, ok := latest(cfg, installed); ok {
			log.Debug().Str("runner", id).Str("path", path).Msg("resolved runner alias")
			return path, nil
		}
	}

	if s, ok := suggest(id, installed); ok {
		return "", fmt.Errorf("%w: %s (did you mean %q?)", ErrRunnerNotFound, id, s)
	}
	return "", fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
}

// latest picks the family's install dir if present, otherwise the highest
// versioned release of the family.
func latest(cfg RunnerConfig, installed []Runner) (string, bool) {
	var candidates []Runner
	for _, rn := range installed {
		if rn.Name == cfg.InstallDir {
			return rn.Path, true
		}
		if strings.HasPrefix(rn.Name, cfg.Prefix) {
			candidates = append(candidates, rn)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return newerThan(candidates[i].Name, candidates[j].Name)
	})
	return candidates[0].Path, true
}

// newerThan orders runner dir names by the version embedded in them.
// Names without a parseable version sort last; ties fall back to name.
func newerThan(a, b string) bool {
	va, vb := parseVersion(a), parseVersion(b)
	switch {
	case va != nil && vb != nil:
		if c := va.Compare(vb); c != 0 {
			return c > 0
		}
	case va != nil:
		return true
	case vb != nil:
		return false
	}
	return a > b
}

func parseVersion(name string) *version.Version {
	m := versionPattern.FindString(name)
	if m == "" {
		return nil
	}
	v, err := version.NewVersion(strings.ReplaceAll(m, "-", "."))
	if err != nil {
		return nil
	}
	return v
}

func suggest(id string, installed []Runner) (string, bool) {
	best := ""
	var bestScore float32
	for _, rn := range installed {
		score := edlib.JaroWinklerSimilarity(strings.ToLower(id), strings.ToLower(rn.Name))
		if score > bestScore {
			best, bestScore = rn.Name, score
		}
	}
	return best, bestScore >= minSuggestSimilarity
}

// Installed lists runners across all roots. A name found in more than one
// root is reported once, from the first root.
func (r *Resolver) Installed() []Runner {
	seen := make(map[string]struct{})
	var runners []Runner

	for _, root := range r.roots {
		entries, err := afero.ReadDir(r.fs, root)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("root", root).Msg("failed to read compatibility tools dir")
			}
			continue
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if _, dup := seen[e.Name()]; dup {
				continue
			}
			path := filepath.Join(root, e.Name())
			if !r.looksLikeRunner(path) {
				continue
			}
			seen[e.Name()] = struct{}{}
			runners = append(runners, Runner{
				Name:        e.Name(),
				DisplayName: r.displayName(path, e.Name()),
				Path:        path,
				Family:      familyOf(e.Name()),
			})
		}
	}

	sort.SliceStable(runners, func(i, j int) bool {
		return runners[i].Name < runners[j].Name
	})
	return runners
}

// IsInstalled reports whether a runner directory with this name exists.
func (r *Resolver) IsInstalled(name string) bool {
	if Validate(name) != nil || name == "" {
		return false
	}
	for _, root := range r.roots {
		if r.looksLikeRunner(filepath.Join(root, name)) {
			return true
		}
	}
	return false
}

// Delete removes an installed runner from the first root containing it.
func (r *Resolver) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrRunnerInvalid)
	}
	if err := Validate(name); err != nil {
		return err
	}
	for _, root := range r.roots {
		path := filepath.Join(root, name)
		if !r.looksLikeRunner(path) {
			continue
		}
		if err := r.fs.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove runner %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("removed runner")
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRunnerNotFound, name)
}

func (r *Resolver) looksLikeRunner(dir string) bool {
	info, err := r.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, marker := range []string{protonScript, compatToolManifest, toolManifest} {
		if _, err := r.fs.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// displayName reads display_name from the runner's compatibilitytool.vdf.
func (r *Resolver) displayName(dir, name string) string {
	f, err := r.fs.Open(filepath.Join(dir, compatToolManifest))
	if err != nil {
		return ""
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing compatibility tool manifest")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Str("runner", name).Msg("failed to parse compatibility tool manifest")
		return ""
	}
	m = normalizeVDFKeys(m)

	root, ok := m["compatibilitytools"].(map[string]any)
	if !ok {
		return ""
	}
	tools, ok := root["compat_tools"].(map[string]any)
	if !ok {
		return ""
	}

	// Prefer the entry named after the directory, then any entry.
	if tool, ok := tools[strings.ToLower(name)].(map[string]any); ok {
		if dn, ok := tool["display_name"].(string); ok {
			return dn
		}
	}
	keys := make([]string, 0, len(tools))
	for k := range tools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if tool, ok := tools[k].(map[string]any); ok {
			if dn, ok := tool["display_name"].(string); ok {
				return dn
			}
		}
	}
	return ""
}

// normalizeVDFKeys lowercases keys; Steam isn't consistent about case.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}

