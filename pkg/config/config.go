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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FaugusLauncher/faugus-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "FAUGUS_CFG"
)

// ErrSchemaMismatch is returned when config.toml was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	ErrorReporting ErrorReporting `toml:"error_reporting"`
	Launch         Launch         `toml:"launch"`
	ConfigSchema   int            `toml:"config_schema"`
	DebugLogging   bool           `toml:"debug_logging"`
}

// Launch holds the settings that affect how games are started. It is
// handed to the launcher by value so a launch never sees a half-applied
// reload.
type Launch struct {
	UmuRun         string `toml:"umu_run,omitempty"`
	CompatToolsDir string `toml:"compat_tools_dir,omitempty"`
	DefaultRunner  string `toml:"default_runner,omitempty"`
	DefaultPrefix  string `toml:"default_prefix,omitempty"`
	EnableLogging  bool   `toml:"enable_logging"`
	WaylandDriver  bool   `toml:"wayland_driver"`
	EnableHDR      bool   `toml:"enable_hdr"`
	EnableWow64    bool   `toml:"enable_wow64"`
	DiscreteGPU    bool   `toml:"discrete_gpu"`
}

type ErrorReporting struct {
	DSN     string `toml:"dsn,omitempty"`
	Enabled bool   `toml:"enabled"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Launch: Launch{
		DefaultRunner: "GE-Proton",
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads config.toml from configDir, creating it from defaults
// on first run. A legacy config.ini next to it is imported once.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		legacyPath := filepath.Join(filepath.Dir(cfgPath), LegacyCfgFile)
		if _, err := os.Stat(legacyPath); err == nil {
			log.Info().Str("path", legacyPath).Msg("importing legacy config")
			if err := ImportLegacy(legacyPath, &cfg.vals); err != nil {
				log.Warn().Err(err).Msg("failed to import legacy config, using defaults")
				cfg.vals = defaults
			}
		}

		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over defaults so missing keys keep their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the location of config.toml.
func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// LaunchSettings returns a snapshot of the launch settings.
func (c *Instance) LaunchSettings() Launch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launch
}

func (c *Instance) SetLaunchSettings(l Launch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launch = l
}

// ErrorReporting returns whether error reporting is on and where to.
func (c *Instance) ErrorReporting() ErrorReporting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting
}
