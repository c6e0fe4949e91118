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
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/duel/pkg/match"
	"laptudirm.com/x/duel/pkg/uci"
)

// New validates the given configuration and creates a Tournament from it.
// Strength limits for the opponent are folded into its option list here,
// so invalid values are caught before anything is spawned.
func New(config Config) (*Tournament, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Skill != nil || config.Elo != nil {
		options := make(map[string]string)
		for name, value := range config.Opponent.Options {
			options[name] = value
		}

		if config.Skill != nil {
			options["Skill Level"] = strconv.Itoa(*config.Skill)
		}

		if config.Elo != nil {
			options["UCI_LimitStrength"] = "true"
			options["UCI_Elo"] = strconv.Itoa(*config.Elo)
		}

		config.Opponent.Options = options
	}

	return &Tournament{Config: config}, nil
}

// Tournament runs a configured number of games between the tested engine
// and its opponent, strictly one game at a time: both games of a
// concurrent pair would contend for the same two long-lived engine
// processes, and engine search state must be reset between games.
type Tournament struct {
	Config Config
}

// Run plays the whole match and returns its Summary. If a game fails
// fatally mid-match, the Summary of the games completed up to that point
// is returned alongside the error. Both engines are torn down on every
// exit path, each independently of the other.
func (tour *Tournament) Run() (*Summary, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Starting engines..."
	s.Start()

	sessions, err := tour.connect()
	s.Stop()

	for _, session := range sessions {
		if session != nil {
			defer session.Close()
		}
	}

	if err != nil {
		return nil, err
	}

	return tour.play(sessions[0], sessions[1])
}

// connect launches both engines and takes them through the handshake,
// option setting, and readiness barrier. The two engines are brought up
// concurrently; even on failure every started session is returned so the
// caller can tear it down.
func (tour *Tournament) connect() ([2]*uci.Session, error) {
	configs := [2]uci.EngineConfig{tour.Config.Engine, tour.Config.Opponent}

	var sessions [2]*uci.Session
	var group errgroup.Group

	for i := range configs {
		i := i
		group.Go(func() error {
			engine, err := uci.StartEngine(configs[i])
			if err != nil {
				return err
			}

			session := uci.NewSession(engine)
			sessions[i] = session

			if err := session.Handshake(); err != nil {
				return err
			}

			for name, value := range configs[i].Options {
				if err := session.SetOption(name, value); err != nil {
					return err
				}
			}

			return session.AwaitReady()
		})
	}

	err := group.Wait()
	return sessions, err
}

// play runs the match's game loop over two connected players.
func (tour *Tournament) play(tested, opponent match.Player) (*Summary, error) {
	summary := new(Summary)

	for number := 1; number <= tour.Config.Games; number++ {
		// Clear any residual search state from the previous game and
		// wait for both engines to settle before starting the next.
		for _, player := range [2]match.Player{tested, opponent} {
			if err := player.NewGame(); err != nil {
				return summary, err
			}

			if err := player.AwaitReady(); err != nil {
				return summary, err
			}
		}

		testedIsWhite := tour.Config.testedIsWhite(number)

		white, black := tested, opponent
		color := "White"
		if !testedIsWhite {
			white, black = opponent, tested
			color = "Black"
		}

		logrus.Infof(
			"\x1b[33mStarting\x1b[0m Game #%d/%d: %s vs %s (%s plays %s)\n",
			number, tour.Config.Games,
			tested.Name(), opponent.Name(),
			tested.Name(), color,
		)

		game := &match.Game{
			White: white, Black: black,
			MaxPlies: tour.Config.MaxPlies,
			MoveTime: tour.Config.MoveTime,
		}

		record, err := game.Play()
		if err != nil {
			return summary, err
		}

		outcome := outcomeOf(record.Result, testedIsWhite)
		summary.add(Record{
			Record:      *record,
			Outcome:     outcome,
			TestedWhite: testedIsWhite,
		})

		logrus.Infof(
			"\x1b[32mFinished\x1b[0m Game #%d/%d: %d moves, %s (%s)\n",
			number, tour.Config.Games,
			len(record.Moves), record.Result, outcome,
		)
	}

	return summary, nil
}
