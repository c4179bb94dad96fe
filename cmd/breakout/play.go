package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStrict     bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a round",
	Long: `Start playing Breakout. The variant defaults to "breakout".

Controls:
  Left/Right/A/D  - Move paddle (mouse works too)
  Down/S          - Stop paddle
  Space/Enter     - Launch ball
  P/Esc           - Pause
  R               - Restart (after the round ends)
  ?               - Toggle help
  Ctrl+S          - Save screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy    - More lives, wider paddle, slower ball
  normal  - Config values as loaded
  hard    - Fewer lives, narrower paddle, faster ball

Examples:
  breakout play
  breakout play --strict
  breakout play --difficulty hard
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	// Shared by menu and serve, which create games too.
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagStrict, "strict", false, "Break at most one brick per frame")
}

// applyGameFlags validates --config and --difficulty and hands them to the
// game package before any instance is created.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		if _, loadErr := config.LoadBreakout(flagConfig); loadErr != nil {
			return loadErr
		}
	}
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(preset)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "breakout"
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagStrict {
		gameID = "breakout_strict"
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'breakout list' to see available variants)", gameID)
	}

	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("starting round", "game", gameID, "difficulty", flagDifficulty)
	saved, err := tui.Run(game, store, runtimeConfig(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range saved {
		fmt.Fprintf(out, "Replay saved: %s\n", id)
	}
	if len(saved) > 0 {
		fmt.Fprintln(out, "Run 'breakout replay <id>' to verify a replay.")
	}
	return nil
}
