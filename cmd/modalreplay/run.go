package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/akmonengine/modal/config"
	"github.com/akmonengine/modal/replay"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const watchDebounce = 200 * time.Millisecond

var (
	settingsPath string
	watch        bool
	output       string
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Play a script and print the result",
	Long: `Play a replay script against a fresh editor. With --watch the script is played again
every time the settings file changes, until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Settings file (TOML)")
	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Replay whenever the settings file changes")
	runCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	if output != "text" && output != "yaml" {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", output)
		os.Exit(1)
	}
	if watch && settingsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --watch needs --settings")
		os.Exit(1)
	}

	script, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	settings := config.Default()
	if settingsPath != "" {
		settings, err = config.Load(settingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
		if !cmd.Flags().Changed("log-level") {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.Level()})))
		}
	}

	if err := play(script, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !watch {
		return
	}

	if err := watchSettings(cmd.Context(), script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// watchSettings replays the script on every settings change until interrupted
func watchSettings(ctx context.Context, script *replay.Script) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher, err := config.NewWatcher(settingsPath, watchDebounce, slog.Default())
	if err != nil {
		return err
	}
	defer watcher.Close()

	updates := make(chan *config.Settings, 1)
	watcher.Start(func(settings *config.Settings, err error) {
		if err != nil {
			slog.Warn("settings reload failed, keeping the previous ones", "error", err)
			return
		}
		offerLatest(updates, settings)
	})

	fmt.Fprintf(os.Stderr, "Watching %s, press Ctrl+C to stop\n", settingsPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case settings := <-updates:
			fmt.Println()
			if err := play(script, settings); err != nil {
				slog.Error("replay failed", "error", err)
			}
		}
	}
}

// offerLatest replaces the pending settings, if any, and never blocks.
// When another reload fills the slot first, its settings win.
func offerLatest(updates chan *config.Settings, settings *config.Settings) {
	select {
	case <-updates:
	default:
	}
	select {
	case updates <- settings:
	default:
	}
}

func play(script *replay.Script, settings *config.Settings) error {
	result, err := replay.Run(script, settings, slog.Default())
	if err != nil {
		return err
	}

	if output == "yaml" {
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	printText(result)
	return nil
}

func printText(result *replay.Result) {
	fmt.Println("Replay Result")
	fmt.Println("=============")
	fmt.Printf("Final state: %s\n", result.State)
	fmt.Printf("Overlay lines: %d\n\n", result.Lines)

	fmt.Println("Actors:")
	for _, a := range result.Actors {
		marker := " "
		if a.Selected {
			marker = "*"
		}
		fmt.Printf("  %s %-12s pos (%.4f, %.4f, %.4f)  rot (%.4f, %.4f, %.4f, %.4f)  scale (%.4f, %.4f, %.4f)\n",
			marker, a.Name,
			a.Position.X(), a.Position.Y(), a.Position.Z(),
			a.Rotation[0], a.Rotation[1], a.Rotation[2], a.Rotation[3],
			a.Scale.X(), a.Scale.Y(), a.Scale.Z(),
		)
	}

	fmt.Println("\nUndo records:")
	for i, record := range result.Records {
		current := ""
		if i == result.UndoIdx {
			current = "  <- current"
		}
		fmt.Printf("  %d. %s%s\n", i+1, record, current)
	}

	fmt.Println("\nEvents:")
	if len(result.Events) == 0 {
		fmt.Println("  (none)")
	}
	for _, event := range result.Events {
		fmt.Printf("  %s\n", event)
	}

	fmt.Println("\nSteps:")
	for i, step := range result.Steps {
		key := step.Key
		if key == "" {
			key = "-"
		}
		fmt.Printf("  %3d %-18s consumed=%-5t %s\n", i, key, step.Consumed, strings.ToLower(step.State))
	}
}
