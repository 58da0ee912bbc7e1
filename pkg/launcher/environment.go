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
	"slices"
	"strconv"
	"strings"

	"github.com/FaugusLauncher/faugus-core/pkg/config"
	"github.com/FaugusLauncher/faugus-core/pkg/games"
	"github.com/FaugusLauncher/faugus-core/pkg/helpers"
	"github.com/rs/zerolog/log"
)

// Variables read by umu-run, Proton and the tools they load.
const (
	EnvWinePrefix        = "WINEPREFIX"
	EnvProtonPath        = "PROTONPATH"
	EnvGameID            = "GAMEID"
	EnvMangoHud          = "MANGOHUD"
	EnvDisableHidraw     = "WINE_DISABLE_HIDRAW"
	EnvEnableWayland     = "PROTON_ENABLE_WAYLAND"
	EnvEnableHDR         = "ENABLE_HDR"
	EnvUseWow64          = "PROTON_USE_WOW64"
	EnvGLXVendor         = "__GLX_VENDOR_LIBRARY_NAME"
	EnvLSFGLegacy        = "LSFG_LEGACY"
	EnvLSFGMultiplier    = "LSFG_MULTIPLIER"
	EnvLSFGPerformance   = "LSFG_PERFORMANCE_MODE"
	EnvLSFGHDR           = "LSFG_HDR_MODE"
	EnvLSFGFlowScale     = "LSFG_FLOW_SCALE"
	EnvNoFsync           = "PROTON_NO_FSYNC"
	EnvNoEsync           = "PROTON_NO_ESYNC"
	EnvWineDebug         = "WINEDEBUG"
	EnvWineMonoTrace     = "WINE_MONO_TRACE"
	defaultFlowScale     = "1.0"
	wineDebugAll         = "+all"
	wineMonoTraceWinForm = "E:System.Windows.Forms"
)

// HostResolver finds binaries on the host.
type HostResolver interface {
	FindBinary(name string) (string, bool)
}

// Environment is the set of variables a launch adds on top of the
// inherited process environment.
type Environment struct {
	vars map[string]string
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]string)}
}

// Set overwrites any earlier value of key.
func (e *Environment) Set(key, value string) {
	e.vars[key] = value
}

func (e *Environment) Get(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e *Environment) Len() int {
	return len(e.vars)
}

// Pairs renders the environment as KEY=VALUE strings sorted by key.
func (e *Environment) Pairs() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+e.vars[k])
	}
	return pairs
}

// Merge returns base (in os.Environ form) with this environment applied on
// top. Variables not set here keep their base value.
func (e *Environment) Merge(base []string) []string {
	merged := NewEnvironment()
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		merged.Set(k, v)
	}
	for k, v := range e.vars {
		merged.Set(k, v)
	}
	return merged.Pairs()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Compose builds the launch environment for game. Layers are applied in a
// fixed order and later layers overwrite earlier ones: overrides, prefix,
// runner path, game id, feature toggles, compatibility fixes, logging.
// Compose never fails; inputs that don't apply are left out.
//
//nolint:gocritic // settings are a snapshot and passed by value
func Compose(
	game *games.Game,
	overrides map[string]string,
	settings config.Launch,
	runnerPath string,
	host HostResolver,
) *Environment {
	env := NewEnvironment()

	for k, v := range overrides {
		env.Set(k, v)
	}

	env.Set(EnvWinePrefix, game.Prefix)

	if runnerPath != "" {
		env.Set(EnvProtonPath, runnerPath)
	}

	env.Set(EnvGameID, game.GameID)

	applyToggles(env, game, settings, host)

	if game.Protonfix != "" {
		env.Set(EnvNoFsync, "1")
		env.Set(EnvNoEsync, "1")
	}

	if settings.EnableLogging {
		env.Set(EnvWineDebug, wineDebugAll)
		env.Set(EnvWineMonoTrace, wineMonoTraceWinForm)
	}

	return env
}

//nolint:gocritic // settings are a snapshot and passed by value
func applyToggles(env *Environment, game *games.Game, settings config.Launch, host HostResolver) {
	if game.MangoHud {
		if _, ok := host.FindBinary(helpers.MangoHudBin); ok {
			env.Set(EnvMangoHud, "1")
		} else {
			log.Info().Str("game", game.Title).Msg("mangohud requested but not installed")
		}
	}

	if game.DisableHidraw {
		env.Set(EnvDisableHidraw, "1")
	}

	if game.LosslessEnabled {
		env.Set(EnvLSFGLegacy, "1")
		if game.LosslessMultiplier > 0 {
			env.Set(EnvLSFGMultiplier, strconv.Itoa(game.LosslessMultiplier))
		}
		env.Set(EnvLSFGPerformance, boolFlag(game.LosslessPerformance))
		env.Set(EnvLSFGHDR, boolFlag(game.LosslessHDR))
		if game.LosslessFlow {
			env.Set(EnvLSFGFlowScale, defaultFlowScale)
		}
	}

	if settings.WaylandDriver {
		env.Set(EnvEnableWayland, "1")
	}
	if settings.EnableHDR {
		env.Set(EnvEnableHDR, "1")
	}
	if settings.EnableWow64 {
		env.Set(EnvUseWow64, "1")
	}
	if settings.DiscreteGPU {
		env.Set(EnvGLXVendor, "nvidia")
	}
}
