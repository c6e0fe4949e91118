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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/duel/pkg/match"
)

// fixed is a Player which always answers a search with the same move. A
// positive failAt makes its nth search fail instead.
type fixed struct {
	name string
	move string

	searches int
	newGames int
	readies  int

	failAt  int
	failure error
}

func (player *fixed) Name() string { return player.name }

func (player *fixed) NewGame() error {
	player.newGames++
	return nil
}

func (player *fixed) AwaitReady() error {
	player.readies++
	return nil
}

func (player *fixed) SetPosition(moves []string) error { return nil }

func (player *fixed) Search(movetime time.Duration) (string, error) {
	player.searches++
	if player.failAt > 0 && player.searches >= player.failAt {
		return "", player.failure
	}

	return player.move, nil
}

func testTournament(t *testing.T, config Config) *Tournament {
	t.Helper()

	tour, err := New(config)
	require.NoError(t, err)
	return tour
}

func TestTournament_AlternatingColorsAndAggregation(t *testing.T) {
	config := validConfig()
	config.Games = 3
	config.Color = ColorAlternate

	tour := testTournament(t, config)

	// The opponent answers its very first search of every game with a
	// null move, so the tested engine wins every game regardless of
	// its color.
	tested := &fixed{name: "tested", move: "e2e4"}
	opponent := &fixed{name: "opponent", move: "0000"}

	summary, err := tour.play(tested, opponent)
	require.NoError(t, err)

	require.Equal(t, 3, summary.Games())
	assert.Equal(t, 3, summary.Wins)
	assert.Zero(t, summary.Losses)
	assert.Zero(t, summary.Draws)
	assert.Equal(t, summary.Games(), summary.Wins+summary.Losses+summary.Draws)

	// Tested engine is White on odd-numbered games, Black on even.
	assert.True(t, summary.Records[0].TestedWhite)
	assert.False(t, summary.Records[1].TestedWhite)
	assert.True(t, summary.Records[2].TestedWhite)

	for _, record := range summary.Records {
		assert.Equal(t, BotWin, record.Outcome)
	}

	// Both engines are reset before every game.
	assert.Equal(t, 3, tested.newGames)
	assert.Equal(t, 3, opponent.newGames)
}

func TestTournament_NullMoveByTestedEngine(t *testing.T) {
	config := validConfig()
	config.MaxPlies = 10

	tour := testTournament(t, config)

	tested := &fixed{name: "tested", move: "(none)"}
	opponent := &fixed{name: "opponent", move: "e7e5"}

	summary, err := tour.play(tested, opponent)
	require.NoError(t, err)

	require.Equal(t, 1, summary.Games())
	assert.Equal(t, OpponentWin, summary.Records[0].Outcome)
	assert.Equal(t, 1, summary.Losses)
	assert.Empty(t, summary.Records[0].Moves)
}

func TestTournament_OngoingCountsAsDraw(t *testing.T) {
	config := validConfig()
	config.Games = 2
	config.MaxPlies = 2

	tour := testTournament(t, config)

	tested := &fixed{name: "tested", move: "e2e4"}
	opponent := &fixed{name: "opponent", move: "e7e5"}

	summary, err := tour.play(tested, opponent)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Draws)
	assert.Equal(t, summary.Games(), summary.Wins+summary.Losses+summary.Draws)

	for _, record := range summary.Records {
		assert.Equal(t, Ongoing, record.Outcome)
		assert.Len(t, record.Moves, 2)
	}
}

func TestTournament_PartialSummaryOnFailure(t *testing.T) {
	config := validConfig()
	config.Games = 3
	config.MaxPlies = 2

	tour := testTournament(t, config)

	fault := errors.New("opponent crashed")
	tested := &fixed{name: "tested", move: "e2e4"}
	opponent := &fixed{name: "opponent", move: "e7e5", failAt: 2, failure: fault}

	summary, err := tour.play(tested, opponent)
	require.ErrorIs(t, err, fault)

	// The first game completed before the opponent failed in the
	// second; its record must survive.
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Games())
	assert.Equal(t, summary.Games(), summary.Wins+summary.Losses+summary.Draws)
}

func TestNew_ValidatesConfig(t *testing.T) {
	config := validConfig()
	config.Games = 0

	_, err := New(config)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "games", configErr.Option)
}

func TestNew_StrengthOptions(t *testing.T) {
	skill, elo := 5, 1600

	config := validConfig()
	config.Skill = &skill
	config.Elo = &elo

	tour := testTournament(t, config)

	options := tour.Config.Opponent.Options
	assert.Equal(t, "5", options["Skill Level"])
	assert.Equal(t, "true", options["UCI_LimitStrength"])
	assert.Equal(t, "1600", options["UCI_Elo"])
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, BotWin, outcomeOf(match.WhiteWon, true))
	assert.Equal(t, OpponentWin, outcomeOf(match.WhiteWon, false))
	assert.Equal(t, OpponentWin, outcomeOf(match.BlackWon, true))
	assert.Equal(t, BotWin, outcomeOf(match.BlackWon, false))
	assert.Equal(t, Draw, outcomeOf(match.Drawn, true))
	assert.Equal(t, Ongoing, outcomeOf(match.Ongoing, false))
}

func TestSummary_Report(t *testing.T) {
	summary := new(Summary)
	summary.add(Record{
		Record:      match.Record{Moves: []string{"e2e4"}, Result: match.Ongoing},
		Outcome:     Ongoing,
		TestedWhite: true,
	})

	var buf bytes.Buffer
	summary.Report(&buf, "tested", "opponent")

	report := buf.String()
	assert.Contains(t, report, "Game 1: 1 moves - ongoing (*)")
	assert.Contains(t, report, "e2e4")
	assert.Contains(t, report, "tested")
	assert.Contains(t, report, "opponent")
}
