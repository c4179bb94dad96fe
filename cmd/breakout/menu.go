package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant and difficulty picker",
	Long: `Start in interactive menu mode.

After a round ends you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate variants
  Left/Right   - Change difficulty
  Enter/Space  - Start round
  Tab          - Browse replays
  Q            - Quit

Examples:
  breakout menu
  breakout menu --fps 30
  breakout menu --db ./replays.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := runtimeConfig()
	for {
		result, menuErr := tui.RunMenu(store, cfg)
		if menuErr != nil {
			return menuErr
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsReplays {
			goBack, replaysErr := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
			if replaysErr != nil {
				return replaysErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, createErr := result.Game()
		if createErr != nil {
			logger.Error("cannot create game", "game", result.GameID, "error", createErr)
			continue
		}

		logger.Info("starting round", "game", result.GameID, "difficulty", result.Difficulty)
		if _, runErr := tui.Run(game, store, cfg, logger); runErr != nil {
			return runErr
		}
	}
}
