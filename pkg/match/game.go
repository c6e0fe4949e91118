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

package match

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Player is one side of a game. *uci.Session implements it.
type Player interface {
	Name() string

	NewGame() error
	AwaitReady() error
	SetPosition(moves []string) error
	Search(movetime time.Duration) (string, error)
}

// IsNullMove reports whether the given move token is one of the accepted
// null-move spellings, which an engine emits when the side to move has no
// legal moves left.
func IsNullMove(move string) bool {
	switch move {
	case "0000", "none", "(none)":
		return true
	default:
		return false
	}
}

// Game runs a single game between two players. The color assignment is
// fixed before the first ply and never changes mid-game.
type Game struct {
	White, Black Player

	MaxPlies int           // maximum number of plies before the game is cut off
	MoveTime time.Duration // search time budget per move
}

// Play runs the game's ply loop to completion and returns its Record. The
// returned move list only ever grows during the game; a null move is
// never part of it.
//
// A null move from the side to move ends the game immediately as a win
// for the other side. The protocol's null move can mean either checkmate
// or stalemate, and this driver deliberately doesn't distinguish the two:
// failing to produce a move always counts as a loss.
func (game *Game) Play() (*Record, error) {
	moves := []string{}

	for ply := 0; ply < game.MaxPlies; ply++ {
		// White moves on even plies, Black on odd ones.
		mover := game.White
		if ply%2 == 1 {
			mover = game.Black
		}

		// Both players receive the identical full history every ply,
		// even though only one of them will move. Each rebuilds its
		// board from it independently; feeding only the mover would
		// let the two silently diverge.
		for _, player := range [2]Player{game.White, game.Black} {
			if err := player.SetPosition(moves); err != nil {
				return nil, err
			}
		}

		// Barrier: don't issue the search before both players have
		// finished processing the new position.
		for _, player := range [2]Player{game.White, game.Black} {
			if err := player.AwaitReady(); err != nil {
				return nil, err
			}
		}

		move, err := mover.Search(game.MoveTime)
		if err != nil {
			return nil, err
		}

		logrus.Infof("ply %03d %s: %s\n", ply+1, mover.Name(), move)

		if IsNullMove(move) {
			result := WhiteWon
			if mover == game.White {
				result = BlackWon
			}

			return &Record{Moves: moves, Result: result}, nil
		}

		moves = append(moves, move)
	}

	return &Record{Moves: moves, Result: Ongoing}, nil
}
