package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/platform/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse high scores interactively",
	Long: `Open the scoreboard for all variants.

Controls:
  Tab/Right  - Next variant
  Shift+Tab  - Previous variant
  Up/Down    - Scroll
  Esc/Q      - Close`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store := openStore(newLogger("runner"))
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	_, err := tui.RunScoreboard(store, width, height)
	return err
}
