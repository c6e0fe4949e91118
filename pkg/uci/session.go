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

package uci

import (
	"strings"
	"time"
)

// NullMove is the protocol's "no legal move" token. Engines emit it (or
// one of its variant spellings) when asked to search a position in which
// the side to move has no legal moves.
const NullMove = "0000"

// NewSession wraps an already-started engine in a protocol session.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Session implements the command/response protocol on top of one Engine.
// Every exchange is synchronous: a command is written and the session
// blocks until the structurally expected response line arrives, discarding
// everything else the engine prints in between.
type Session struct {
	engine *Engine
}

// Name returns the underlying engine's name.
func (session *Session) Name() string {
	return session.engine.Name()
}

// Handshake identifies the protocol to the engine and waits for it to
// finish introducing itself.
func (session *Session) Handshake() error {
	if err := session.engine.Send("uci"); err != nil {
		return err
	}

	return session.await("uciok")
}

// AwaitReady synchronizes the session with the engine: once readyok
// arrives, every previously issued command has been fully processed.
func (session *Session) AwaitReady() error {
	if err := session.engine.Send("isready"); err != nil {
		return err
	}

	return session.await("readyok")
}

// SetOption sets an engine option. No response is expected.
func (session *Session) SetOption(name, value string) error {
	return session.engine.Send("setoption name %s value %s", name, value)
}

// NewGame signals the engine to reset its internal game state. No
// response is expected.
func (session *Session) NewGame() error {
	return session.engine.Send("ucinewgame")
}

// SetPosition sends the complete move history of the current game. The
// engine rebuilds its board from scratch by replaying the moves, so both
// engines of a match stay in sync as long as they always receive the
// same history.
func (session *Session) SetPosition(moves []string) error {
	if len(moves) == 0 {
		return session.engine.Send("position startpos")
	}

	return session.engine.Send("position startpos moves %s", strings.Join(moves, " "))
}

// Search asks the engine to pick a move within the given time budget and
// returns its move token. Info lines are discarded until the bestmove
// line arrives; a trailing ponder token is ignored. A bestmove line with
// no move on it yields NullMove instead of an error.
func (session *Session) Search(movetime time.Duration) (string, error) {
	if err := session.engine.Send("go movetime %d", movetime.Milliseconds()); err != nil {
		return "", err
	}

	for {
		line, err := session.engine.ReadLine()
		if err != nil {
			return "", &ProtocolError{Engine: session.Name(), Expecting: "bestmove", Err: err}
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "bestmove" {
			continue
		}

		if len(fields) < 2 {
			// Malformed bestmove line: treat it as a null move
			// instead of aborting the match.
			return NullMove, nil
		}

		return fields[1], nil
	}
}

// Close tears down the underlying engine process. Safe to call multiple
// times and on every exit path.
func (session *Session) Close() {
	session.engine.Terminate()
}

// await reads and discards engine output until the given response line
// shows up.
func (session *Session) await(response string) error {
	for {
		line, err := session.engine.ReadLine()
		if err != nil {
			return &ProtocolError{Engine: session.Name(), Expecting: response, Err: err}
		}

		if line == response {
			return nil
		}
	}
}
