// runner is a side-scrolling dinosaur runner for the terminal, SSH and the
// browser.
//
// Usage:
//
//	runner variants            - List available variants
//	runner play [variant]      - Play a variant (menu if omitted)
//	runner scores <variant>    - Show high scores for a variant
//	runner board               - Interactive scoreboard
//	runner serve               - Start SSH server for remote play
//	runner web                 - Start HTTP server for browser play
//
// Global flags:
//
//	--tps <rate>          - Simulation ticks per second (default: 60)
//	--seed <value>        - RNG seed for reproducible sessions
//	--db <path>           - Database path (default: ~/.dino-runner/scores.db)
//	--config <path>       - Custom variant config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//
// Every flag can also be set with RUNNER_<FLAG>, e.g. RUNNER_TPS=30.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
	_ "github.com/vovakirdan/dino-runner/internal/variants"
)

const releaseVersion = "0.1.0"

var (
	// Global flags
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RUNNER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Dino Runner - jump and duck through an endless desert",
		Long: `Dino Runner is an endless side-scroller: jump over cacti, duck under
birds and see how far you get before the first collision.

Available commands:
  variants - Show all available variants
  play     - Play a variant (opens the menu without an argument)
  scores   - Print high scores
  board    - Interactive scoreboard
  serve    - Start SSH server for remote play
  web      - Start HTTP server for browser play

Examples:
  runner play
  runner play classic --difficulty hard
  runner play lite --tps 30
  runner serve --ssh :2222
  runner web --port 8080`,
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateGlobals()
		},
	}

	pf := cmd.PersistentFlags()
	pf.IntVar(&flagTPS, "tps", 60, "Simulation ticks per second (env: RUNNER_TPS)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed, 0 = random based on time (env: RUNNER_SEED)")
	pf.StringVar(&flagDBPath, "db", "~/.dino-runner/scores.db", "Path to scores database (env: RUNNER_DB)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom variant config YAML (env: RUNNER_CONFIG)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed (env: RUNNER_DIFFICULTY)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output (env: RUNNER_VERBOSE)")

	cmd.AddCommand(variantsCmd)
	cmd.AddCommand(playCmd)
	cmd.AddCommand(scoresCmd)
	cmd.AddCommand(boardCmd)
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(webCmd)

	bindEnv(v, pf)
	for _, sub := range cmd.Commands() {
		bindEnv(v, sub.Flags())
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("dino-runner v{{.Version}}\n")

	return cmd
}

// bindEnv lets RUNNER_<FLAG> fill any flag not given on the command line.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func validateGlobals() error {
	if flagTPS < 1 || flagTPS > 1000 {
		return fmt.Errorf("invalid --tps (must be between 1-1000 inclusive): %d", flagTPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	return nil
}

func difficulty() config.DifficultyPreset {
	preset, _ := config.ParsePreset(flagDifficulty)
	return preset
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// terminalSize returns the size of stdout, or 80x24 when it is not a tty.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// requireVariant fails with a hint when id is not registered.
func requireVariant(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q (run 'runner variants' to see available variants)", id)
	}
	return nil
}

// openStore opens the scores database. Play still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
