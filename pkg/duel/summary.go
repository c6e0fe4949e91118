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
	"io"
	"math"
	"strings"

	"laptudirm.com/x/duel/pkg/match"
	"laptudirm.com/x/duel/pkg/stats"
)

// Outcome is a game's result attributed to the match's named sides.
type Outcome int

const (
	Ongoing     Outcome = iota // ply limit reached, game undecided
	BotWin                     // the tested engine won
	OpponentWin                // the opponent engine won
	Draw
)

// String returns the Outcome from the tested engine's point of view.
func (outcome Outcome) String() string {
	switch outcome {
	case BotWin:
		return "win"
	case OpponentWin:
		return "loss"
	case Draw:
		return "draw"
	case Ongoing:
		return "ongoing"
	default:
		return "illegal outcome"
	}
}

// outcomeOf attributes a game Result to the named sides given the tested
// engine's color in that game.
func outcomeOf(result match.Result, testedWhite bool) Outcome {
	switch result {
	case match.WhiteWon:
		if testedWhite {
			return BotWin
		}
		return OpponentWin

	case match.BlackWon:
		if testedWhite {
			return OpponentWin
		}
		return BotWin

	case match.Drawn:
		return Draw

	default:
		return Ongoing
	}
}

// Record is one completed game of the match: its move sequence and result
// plus the color assignment which attributes that result to a side.
type Record struct {
	match.Record

	Outcome     Outcome
	TestedWhite bool
}

// Summary aggregates the records of a match's completed games. Ongoing
// games score as draws, so Wins+Losses+Draws always equals the number of
// completed games.
type Summary struct {
	Records []Record

	Wins, Losses, Draws int // from the tested engine's point of view
}

func (summary *Summary) add(record Record) {
	summary.Records = append(summary.Records, record)

	switch record.Outcome {
	case BotWin:
		summary.Wins++
	case OpponentWin:
		summary.Losses++
	default:
		summary.Draws++
	}
}

// Games returns the number of completed games in the Summary.
func (summary *Summary) Games() int {
	return len(summary.Records)
}

// Report writes the match's final report: one line per game followed by
// the score table with an Elo estimate for each side.
func (summary *Summary) Report(w io.Writer, engine, opponent string) {
	for i, record := range summary.Records {
		fmt.Fprintf(
			w, "Game %d: %d moves - %s (%s)\n",
			i+1, len(record.Moves), record.Outcome, record.Result,
		)

		if len(record.Moves) > 0 {
			fmt.Fprintf(w, "        %s\n", strings.Join(record.Moves, " "))
		}
	}

	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════╣")

	scores := [2]struct {
		name                string
		wins, losses, draws int
	}{
		{engine, summary.Wins, summary.Losses, summary.Draws},
		{opponent, summary.Losses, summary.Wins, summary.Draws},
	}

	for i, score := range scores {
		lower, elo, upper := stats.Elo(score.wins, score.draws, score.losses)

		format := "║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n"
		if i == 0 {
			if elo >= 0 {
				format = "║ \x1b[32m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			} else {
				format = "║ \x1b[31m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			}
		}

		fmt.Fprintf(
			w, format,
			i+1, score.name,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
			score.wins, score.losses, score.draws,
			score.wins+score.losses+score.draws,
		)
	}

	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════╝")
}
