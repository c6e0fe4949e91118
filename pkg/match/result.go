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

// Result represents the result of a single game.
type Result int

const (
	Ongoing Result = iota // ply limit reached with the game undecided
	WhiteWon
	BlackWon
	Drawn
)

// String returns the PGN-style representation of the given Result.
func (result Result) String() string {
	switch result {
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Drawn:
		return "1/2-1/2"
	case Ongoing:
		return "*"
	default:
		return "?-?"
	}
}

// Record is a completed game: its full move sequence and how it ended.
type Record struct {
	Moves  []string
	Result Result
}
