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

// Package games reads the game list kept in games.json and validates the
// records the launcher is handed.
package games

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/FaugusLauncher/faugus-core/pkg/proton"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	DefaultRunner     = "GE-Proton"
	DefaultMultiplier = 2
	MaxMultiplier     = 20
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidGame  = errors.New("invalid game")
)

// Game is one entry of games.json. Fields the launch path doesn't use are
// kept so a read-modify-write by another tool doesn't lose them.
type Game struct {
	Banner              *string `json:"banner"`
	GameID              string  `json:"gameid" validate:"required"`
	Title               string  `json:"title" validate:"required"`
	Path                string  `json:"path" validate:"required"`
	Prefix              string  `json:"prefix"`
	LaunchArguments     string  `json:"launch_arguments"`
	GameArguments       string  `json:"game_arguments"`
	Protonfix           string  `json:"protonfix"`
	Runner              string  `json:"runner" validate:"runner"`
	AddApp              string  `json:"addapp"`
	AddAppBat           string  `json:"addapp_bat"`
	Playtime            uint64  `json:"playtime"`
	LosslessMultiplier  int     `json:"lossless_multiplier" validate:"gte=0,lte=20"`
	MangoHud            bool    `json:"mangohud"`
	GameMode            bool    `json:"gamemode"`
	DisableHidraw       bool    `json:"disable_hidraw"`
	AddAppCheckbox      bool    `json:"addapp_checkbox"`
	LosslessEnabled     bool    `json:"lossless_enabled"`
	LosslessFlow        bool    `json:"lossless_flow"`
	LosslessPerformance bool    `json:"lossless_performance"`
	LosslessHDR         bool    `json:"lossless_hdr"`
	Hidden              bool    `json:"hidden"`
}

// New returns a game with a fresh id and the launcher defaults. The id is
// the correlation key for logs and tracked processes and must never change.
func New(title, path, prefix string) Game {
	return Game{
		GameID:             uuid.New().String(),
		Title:              title,
		Path:               path,
		Prefix:             prefix,
		Runner:             DefaultRunner,
		LosslessMultiplier: DefaultMultiplier,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("runner", validateRunner); err != nil {
		panic(fmt.Sprintf("failed to register runner validation: %v", err))
	}
	return v
}

func validateRunner(fl validator.FieldLevel) bool {
	return proton.Validate(fl.Field().String()) == nil
}

// Validate checks the fields a launch depends on.
func (g *Game) Validate() error {
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidGame, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidGame, err)
	}
	return nil
}

// Store reads games.json.
type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// LoadAll returns every game in the file. A missing file is an empty list.
func (s *Store) LoadAll(_ context.Context) ([]Game, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Game{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read games file: %w", err)
	}

	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse games file %s: %w", s.path, err)
	}
	log.Debug().Int("count", len(games)).Msg("loaded games")
	return games, nil
}

// FindByID returns the game with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (Game, error) {
	games, err := s.LoadAll(ctx)
	if err != nil {
		return Game{}, err
	}
	for i := range games {
		if games[i].GameID == id {
			return games[i], nil
		}
	}
	return Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
}

// FindByTitle returns the first game with the given title.
func (s *Store) FindByTitle(ctx context.Context, title string) (Game, error) {
	games, err := s.LoadAll(ctx)
	if err != nil {
		return Game{}, err
	}
	for i := range games {
		if games[i].Title == title {
			return games[i], nil
		}
	}
	return Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, title)
}
