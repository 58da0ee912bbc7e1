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

// Package helpers provides shared fixtures for tests: an in-memory
// filesystem pre-populated with runners, game lists and override files.
package helpers

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewReadOnlyFS wraps an in-memory filesystem so every write fails.
func NewReadOnlyFS(base afero.Fs) *FSHelper {
	return &FSHelper{
		Fs: afero.NewReadOnlyFs(base),
	}
}

// CreateRunner creates a runner directory under root with a proton
// script. A non-empty displayName also writes a compatibilitytool.vdf.
func (h *FSHelper) CreateRunner(root, name, displayName string) (string, error) {
	dir := filepath.Join(root, name)
	if err := h.Fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create runner directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(h.Fs, filepath.Join(dir, "proton"), []byte("#!/usr/bin/env python3\n"), 0o755); err != nil {
		return "", fmt.Errorf("failed to write proton script: %w", err)
	}
	if displayName != "" {
		manifest := fmt.Sprintf(`"compatibilitytools"
{
  "compat_tools"
  {
    %q
    {
      "install_path" "."
      "display_name" %q
      "from_oslist"  "windows"
      "to_oslist"    "linux"
    }
  }
}
`, name, displayName)
		path := filepath.Join(dir, "compatibilitytool.vdf")
		if err := afero.WriteFile(h.Fs, path, []byte(manifest), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return dir, nil
}

// CreateGamesFile writes games as a games.json array.
func (h *FSHelper) CreateGamesFile(path string, games any) error {
	data, err := json.MarshalIndent(games, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal games: %w", err)
	}
	return h.WriteFile(path, data)
}

// CreateDirectoryStructure creates a directory tree. String and []byte
// values are files, maps are directories and nil is an empty directory.
func (h *FSHelper) CreateDirectoryStructure(structure map[string]any) error {
	return h.createStructureRecursive("", structure)
}

func (h *FSHelper) createStructureRecursive(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.createStructureRecursive(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// FileExists checks if a file exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// ReadFile reads a file and returns its content
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes content to a file, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// ListFiles lists all files in a directory
func (h *FSHelper) ListFiles(path string) ([]string, error) {
	files, err := afero.ReadDir(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	fileNames := make([]string, len(files))
	for i, file := range files {
		fileNames[i] = file.Name()
	}

	return fileNames, nil
}
