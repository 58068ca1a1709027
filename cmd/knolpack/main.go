package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/conorfennell/knolpack/internal/apkg"
	"github.com/conorfennell/knolpack/internal/config"
	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/knol"
	"github.com/conorfennell/knolpack/internal/media"
	"github.com/conorfennell/knolpack/internal/sources"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		slog.Error("knolpack failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	})))

	knols, err := sources.Collect(ctx, cfg.Sources, cfg.Repos)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		slog.Warn("some sources could not be read", "error", err)
	}
	if len(knols) == 0 {
		return fmt.Errorf("no knols found in %s", strings.Join(cfg.Sources, ", "))
	}

	deck, duplicates, err := knol.NewDeck(cfg.Deck.ID, cfg.Deck.Name, cfg.Deck.Description, knols, cfg.Tags)
	if err != nil {
		return fmt.Errorf("failed to build deck: %w", err)
	}

	files := media.NewTable()
	for _, path := range cfg.Media {
		if err := files.AddFile(path); err != nil {
			return fmt.Errorf("failed to add media: %w", err)
		}
	}

	pkg, err := apkg.New([]*domain.Deck{deck}, files)
	if err != nil {
		return err
	}
	res, err := pkg.WriteToPath(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	fmt.Fprintf(stdout, "Wrote %s: %d notes, %d cards, %d media files.\n",
		cfg.Output, res.Notes, res.Cards, res.MediaFiles)
	if duplicates > 0 {
		fmt.Fprintf(stdout, "Skipped %d duplicate knols.\n", duplicates)
	}
	if res.ZeroCardNotes > 0 {
		fmt.Fprintf(stdout, "%d notes produce no cards.\n", res.ZeroCardNotes)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
