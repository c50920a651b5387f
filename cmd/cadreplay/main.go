// Command cadreplay replays a scripted editing session against the
// construction engine and writes the final frame as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/rasenga223/luminicad"
	"github.com/rasenga223/luminicad/config"
)

func main() {
	var (
		scriptPath = flag.String("script", "session.toml", "session script")
		configPath = flag.String("config", "", "config file (default ~/.config/luminicad/config.toml)")
		output     = flag.String("output", "session.png", "output file")
		locale     = flag.String("locale", "", "message locale, overrides the config")
		settle     = flag.Duration("settle", 500*time.Millisecond, "time a command may wait for input after its events")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		luminicad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	f, err := os.Open(*scriptPath)
	if err != nil {
		log.Fatalf("Failed to open script: %v", err)
	}
	script, err := ParseScript(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	app := luminicad.New(
		luminicad.WithConfig(cfg),
		luminicad.WithLocale(*locale),
		luminicad.WithNotifier(luminicad.NotifierFunc(func(n luminicad.Notice) {
			if n.Kind == luminicad.NoticePrompt {
				fmt.Println("  " + n.Message)
				return
			}
			fmt.Println(n.Message)
		})),
	)
	if err := replay(context.Background(), app, script, *settle); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	if err := app.Renderer().SavePNG(app.View(), *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Session saved to %s (%d shapes)\n", *output, app.Document().Len())
}

// replay runs every entry of the script in order. A command that is still
// waiting for input settle after its events were queued is cancelled.
// Command failures are reported through the app's notifier and do not stop
// the replay.
func replay(ctx context.Context, app *luminicad.App, script Script, settle time.Duration) error {
	for i, run := range script.Runs {
		switch run.Action {
		case "undo":
			if err := app.Undo(); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			continue
		case "redo":
			if err := app.Redo(); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			continue
		}

		events, err := run.ViewEvents(app.View())
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		if _, err := app.Start(ctx, run.Command); err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		app.Dispatch(events...)

		wctx, cancel := context.WithTimeout(ctx, settle)
		err = app.Wait(wctx)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			app.Cancel()
			err = app.Wait(ctx)
		}
		if err != nil {
			luminicad.Logger().Debug("cadreplay: command failed", "run", i, "command", run.Command, "err", err)
		}
	}
	return nil
}
