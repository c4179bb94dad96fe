package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagPlain bool
	flagGame  string
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse stored replays",
	Long: `Browse the replays stored in the database.

The interactive browser can verify (Enter) and delete (X) replays.
Use --plain to print a list instead.

Examples:
  breakout replays
  breakout replays --plain --game breakout_strict --limit 5`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a stored replay and check its outcome",
	Long: `Load a replay, run its inputs on a fresh game and compare the final
state hash with the recorded one.

Examples:
  breakout replay 3f2a9c1e-5b7d-4e0a-9c8b-2d1f6a4e7b90
  breakout replay delete 3f2a9c1e-5b7d-4e0a-9c8b-2d1f6a4e7b90`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored replay",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the browser")
	replaysCmd.Flags().StringVar(&flagGame, "game", "", "Only list replays of this variant")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of replays to list")

	replayCmd.AddCommand(replayDeleteCmd)
}

func runReplays(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !flagPlain {
		cfg := runtimeConfig()
		_, err = tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagGame != "" && !registry.Exists(flagGame) {
		return fmt.Errorf("unknown variant %q", flagGame)
	}

	replays, err := store.ListReplays(flagGame, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(replays) == 0 {
		fmt.Fprintln(out, "No replays recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-16s  %7s  %5s  %-9s  %6s  %s\n",
		"ID", "Game", "Score", "Lives", "Result", "Frames", "Date")
	for _, r := range replays {
		fmt.Fprintf(out, "%-36s  %-16s  %7d  %5d  %-9s  %6d  %s\n",
			r.ID, r.GameID, r.Score, r.Lives, r.State, r.FrameCount,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.LoadReplay(args[0])
	if errors.Is(err, storage.ErrReplayNotFound) {
		return fmt.Errorf("no replay with ID %q (run 'breakout replays --plain' to list them)", args[0])
	}
	if err != nil {
		return err
	}

	game, err := registry.CreateRecordable(r.GameID)
	if err != nil {
		return err
	}
	res, err := replay.Simulate(game, r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replay:   %s (%s, %d frames)\n", r.ID, r.GameID, len(r.Frames))
	fmt.Fprintf(out, "Recorded: %-9s score %d, lives %d, hash %016x\n", r.State, r.Score, r.Lives, r.Hash)
	fmt.Fprintf(out, "Replayed: %-9s score %d, lives %d, hash %016x\n", res.State.Phase, res.State.Score, res.State.Lives, res.Hash)

	if !res.Matches(r) {
		fmt.Fprintln(out, "MISMATCH")
		return fmt.Errorf("replay %s diverged", r.ID)
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func runReplayDelete(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted replay %s\n", args[0])
	return nil
}
