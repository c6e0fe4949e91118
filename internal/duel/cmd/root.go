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

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/duel/pkg/duel"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "duel --engine command [flags]",
		Short: "Play a match between two UCI chess engines",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`duel plays a number of games between a tested UCI engine and an
			opponent engine (stockfish from the PATH by default), keeping
			both engines synchronized with full move histories and
			reporting the aggregate score at the end.

			The two engines can alternatively be defined in a YAML engines
			file, either passed with --engines-file or picked up from its
			default location under the user's configuration directory.

			Examples:
			  duel --engine ./my-engine --games 4 --color alternate
			  duel --engine ./my-engine --plies 80 --movetime 200ms --elo 1600`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},

		RunE: run,
	}

	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.Flags().String("engine", "", "Command of the tested engine")
	root.Flags().String("opponent", "stockfish", "Command of the opponent engine")
	root.Flags().String("engines-file", "", "YAML file defining the two engines")

	root.Flags().Int("games", 1, "Number of games to play")
	root.Flags().Int("plies", 60, "Ply limit per game")
	root.Flags().Duration("movetime", 100*time.Millisecond, "Search time budget per move")
	root.Flags().String("color", duel.ColorWhite, "Tested engine's color (white/black/alternate)")

	root.Flags().Int("skill", 0, "Opponent's Skill Level (0..20)")
	root.Flags().Int("elo", 0, "Opponent's elo limit (UCI_LimitStrength)")

	return root
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	config := duel.Config{}
	config.Games, _ = flags.GetInt("games")
	config.MaxPlies, _ = flags.GetInt("plies")
	config.MoveTime, _ = flags.GetDuration("movetime")
	config.Color, _ = flags.GetString("color")

	enginesFile, _ := flags.GetString("engines-file")
	if enginesFile == "" {
		// Fall back to the default engines file if one exists.
		if _, err := os.Stat(duel.EnginesFile); err == nil {
			enginesFile = duel.EnginesFile
		}
	}

	if enginesFile != "" {
		if err := config.LoadEngines(enginesFile); err != nil {
			return err
		}
	}

	if engine, _ := flags.GetString("engine"); engine != "" {
		config.Engine.Cmd = engine
	}

	if flags.Changed("opponent") || config.Opponent.Cmd == "" {
		config.Opponent.Cmd, _ = flags.GetString("opponent")
	}

	if config.Engine.Cmd == "" {
		return fmt.Errorf("no tested engine: provide --engine or an engines file")
	}

	// Resolve both executables up front so an unresolvable engine fails
	// the run before any game starts.
	if err := resolve(&config.Engine.Cmd); err != nil {
		return fmt.Errorf("tested engine: %w", err)
	}

	if err := resolve(&config.Opponent.Cmd); err != nil {
		return fmt.Errorf("opponent engine: %w (try installing stockfish or passing --opponent)", err)
	}

	if config.Engine.Name == "" {
		config.Engine.Name = filepath.Base(config.Engine.Cmd)
	}

	if config.Opponent.Name == "" {
		config.Opponent.Name = filepath.Base(config.Opponent.Cmd)
	}

	if flags.Changed("skill") {
		skill, _ := flags.GetInt("skill")
		config.Skill = &skill
	}

	if flags.Changed("elo") {
		elo, _ := flags.GetInt("elo")
		config.Elo = &elo
	}

	tour, err := duel.New(config)
	if err != nil {
		return err
	}

	summary, runErr := tour.Run()

	// A partial summary is still reported if a later game aborted the
	// match after at least one game completed.
	if summary != nil && summary.Games() > 0 {
		summary.Report(os.Stdout, config.Engine.Name, config.Opponent.Name)
	}

	return runErr
}

// resolve replaces an engine command with its absolute executable path,
// reporting an error if it can't be found.
func resolve(command *string) error {
	path, err := exec.LookPath(*command)
	if err != nil {
		return err
	}

	*command = path
	return nil
}
