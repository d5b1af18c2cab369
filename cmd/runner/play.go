package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/platform/tui"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant. Without an argument a menu lets you
pick one, and you return to it after each game.

Controls:
  Space/Up/W - Jump
  Down/S     - Duck (hold)
  Enter      - Start / play again
  R          - Reset
  P          - Pause
  Esc/B      - Back to menu (between sessions)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, wider obstacle gaps
  normal - As configured by the variant
  hard   - Faster start, tighter obstacle gaps
  fixed  - No progression, stays at the initial speed

Examples:
  runner play
  runner play classic
  runner play classic --difficulty hard
  runner play lite --tps 30
  runner play classic --config ./my-classic.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	logger := newLogger("runner")

	if len(args) == 1 {
		if err := requireVariant(args[0]); err != nil {
			return err
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 {
		_, err := playVariant(args[0], store, logger, false)
		return err
	}
	return menuLoop(store, logger)
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store *storage.Store, logger *log.Logger) error {
	for {
		width, height := terminalSize()

		res, err := tui.RunMenu(store, width, height)
		if err != nil {
			return err
		}

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.Variant != "":
			goBack, err := playVariant(res.Variant, store, logger, true)
			if err != nil {
				logger.Error("cannot play variant", "variant", res.Variant, "err", err)
				continue
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}

// playVariant runs one game screen. Embedded screens can return to the menu.
func playVariant(variant string, store *storage.Store, logger *log.Logger, embedded bool) (bool, error) {
	opts := registry.Options{
		ConfigPath: flagConfig,
		Difficulty: difficulty(),
		Seed:       seed(),
	}
	if store != nil {
		opts.Store = store.HighScores(variant, logger)
	}

	sim, err := registry.Create(variant, opts)
	if err != nil {
		return false, err
	}

	width, height := terminalSize()
	return tui.Run(sim, tui.Options{
		Variant:  variant,
		TickRate: flagTPS,
		Width:    width,
		Height:   height,
		Store:    store,
		Logger:   logger,
		Embedded: embedded,
	})
}
