// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package duel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/duel/pkg/uci"
)

// EnginesFile is the default location of the engines file, which may
// define the two engines of the match instead of command line flags.
var EnginesFile = filepath.Join(xdg.ConfigHome, "duel", "engines.yaml")

// Color assignment policies for the tested engine.
const (
	ColorWhite     = "white"     // tested engine plays White in every game
	ColorBlack     = "black"     // tested engine plays Black in every game
	ColorAlternate = "alternate" // White in odd-numbered games, Black in even
)

// ConfigError is reported for configuration values outside their valid
// range. It always fires before any engine process is spawned.
type ConfigError struct {
	Option string
	Reason string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("duel: config: %s: %s", err.Option, err.Reason)
}

type Config struct {
	Engine   uci.EngineConfig `yaml:"engine"`   // the tested engine
	Opponent uci.EngineConfig `yaml:"opponent"` // the opponent engine

	Games    int           `yaml:"games"` // number of games to play
	MaxPlies int           `yaml:"plies"` // ply limit per game
	MoveTime time.Duration `yaml:"-"`     // search time budget per move

	// Color assignment policy for the tested engine.
	Color string `yaml:"color"`

	// Opponent strength limits, applied as engine options on startup.
	// Skill maps to "Skill Level" and must lie in 0..20; Elo enables
	// UCI_LimitStrength and sets UCI_Elo, with range checking left to
	// the engine. nil leaves the engine at full strength.
	Skill *int `yaml:"-"`
	Elo   *int `yaml:"-"`
}

// Validate checks the configuration's values against their valid ranges.
func (config *Config) Validate() error {
	if config.Games < 1 {
		return &ConfigError{Option: "games", Reason: "must be at least 1"}
	}

	if config.MaxPlies < 1 {
		return &ConfigError{Option: "plies", Reason: "must be at least 1"}
	}

	if config.MoveTime <= 0 {
		return &ConfigError{Option: "movetime", Reason: "must be positive"}
	}

	switch config.Color {
	case ColorWhite, ColorBlack, ColorAlternate:
	default:
		return &ConfigError{
			Option: "color",
			Reason: fmt.Sprintf("unknown policy %q", config.Color),
		}
	}

	if config.Skill != nil && (*config.Skill < 0 || *config.Skill > 20) {
		return &ConfigError{Option: "skill", Reason: "must lie in 0..20"}
	}

	return nil
}

// testedIsWhite reports the tested engine's color for the given
// 1-indexed game number under the configured policy.
func (config *Config) testedIsWhite(game int) bool {
	switch config.Color {
	case ColorAlternate:
		return game%2 == 1
	case ColorBlack:
		return false
	default:
		return true
	}
}

// LoadEngines reads the engine definitions from the given YAML engines
// file into the configuration, leaving the match parameters untouched.
func (config *Config) LoadEngines(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var engines struct {
		Engine   uci.EngineConfig `yaml:"engine"`
		Opponent uci.EngineConfig `yaml:"opponent"`
	}

	if err := yaml.Unmarshal(data, &engines); err != nil {
		return fmt.Errorf("duel: parsing %s: %w", path, err)
	}

	config.Engine = engines.Engine
	config.Opponent = engines.Opponent
	return nil
}
