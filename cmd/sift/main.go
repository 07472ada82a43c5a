// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/poiesic/sift"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/input"
	"github.com/poiesic/sift/storage/badger"
	"github.com/poiesic/sift/tui"
	"github.com/urfave/cli/v2"
)

var (
	errNoInput         = errors.New("no candidates: pipe them on standard input or use --input")
	errHistoryDisabled = errors.New("history is disabled: set --history or SIFT_HISTORY")
	errPruneSize       = errors.New("--history-size must be positive to prune")
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := config.DefaultConfig()
	return &cli.App{
		Name:      "sift",
		Usage:     "Interactively select a line from standard input by fuzzy search",
		UsageText: "sift [options] < candidates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set logging level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:    "show-matches",
				Aliases: []string{"e"},
				Usage:   "Print the ranked matches for `QUERY` and exit",
			},
			&cli.BoolFlag{
				Name:    "show-scores",
				Aliases: []string{"s"},
				Usage:   "Show the score of each match",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Use `QUERY` as the initial search",
			},
			&cli.StringFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "Input prompt",
				Value:   defaults.Prompt,
			},
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"l"},
				Usage:   "Number of result lines to show",
				Value:   defaults.Lines,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of search workers (0 for one per CPU)",
			},
			&cli.BoolFlag{
				Name:    "read-null",
				Aliases: []string{"0"},
				Usage:   "Read NUL-separated input",
			},
			&cli.BoolFlag{
				Name:    "show-info",
				Aliases: []string{"i"},
				Usage:   "Show the number of matches",
			},
			&cli.IntFlag{
				Name:  "scrolloff",
				Usage: "Rows kept visible below the selection",
				Value: defaults.Scrolloff,
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"f"},
				Usage:   "Read candidates from `FILE` (gzip and zstd are detected)",
			},
			&cli.StringFlag{
				Name:    "history",
				Usage:   "Record accepted queries in `DIR`",
				EnvVars: []string{"SIFT_HISTORY"},
			},
			&cli.IntFlag{
				Name:  "history-size",
				Usage: "Number of history entries to keep (0 keeps all)",
				Value: defaults.HistorySize,
			},
		},
		Before: setupLogger,
		Action: runCommand,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "List or prune recorded queries",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of entries to list",
						Value:   20,
					},
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "Delete all but the --history-size most recent entries",
					},
				},
			},
		},
	}
}

// configFromFlags builds and validates the configuration from c.
func configFromFlags(c *cli.Context) (*config.Config, error) {
	cfg := config.NewConfig(
		config.WithPrompt(c.String("prompt")),
		config.WithLines(c.Int("lines")),
		config.WithShowScores(c.Bool("show-scores")),
		config.WithShowInfo(c.Bool("show-info")),
		config.WithWorkers(c.Int("workers")),
		config.WithReadNull(c.Bool("read-null")),
		config.WithInitialQuery(c.String("query")),
		config.WithScrolloff(c.Int("scrolloff")),
		config.WithHistory(c.String("history"), c.Int("history-size")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	finder, err := sift.NewFinder(sift.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer finder.Close()

	if err := loadCandidates(c, finder); err != nil {
		return err
	}

	if c.IsSet("show-matches") {
		return showMatches(c.App.Writer, finder, c.String("show-matches"), cfg.ShowScores)
	}
	return interactive(c, finder)
}

// loadCandidates reads the corpus from --input, or from the app's reader.
func loadCandidates(c *cli.Context, finder *sift.Finder) error {
	path := c.String("input")
	if path != "" && path != "-" {
		_, err := finder.LoadFile(path)
		return err
	}

	if f, ok := c.App.Reader.(*os.File); ok && input.IsTerminal(f) {
		return errNoInput
	}
	rc, format, err := input.Decode(c.App.Reader)
	if err != nil {
		return err
	}
	defer rc.Close()

	n, err := finder.Load(rc)
	if err != nil {
		return err
	}
	slog.Debug("loaded candidates", "format", format, "bytes", n, "candidates", finder.Store().Len())
	return nil
}

// showMatches prints every match for query in rank order.
func showMatches(w io.Writer, finder *sift.Finder, query string, showScores bool) error {
	out := bufio.NewWriter(w)
	for _, res := range finder.Search(query).Ranked() {
		if showScores {
			fmt.Fprintf(out, "%f\t", float64(res.Score))
		}
		fmt.Fprintln(out, res.Candidate.Text)
	}
	return out.Flush()
}

func interactive(c *cli.Context, finder *sift.Finder) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	ui, err := finder.NewInterface(screen)
	if err != nil {
		screen.Fini()
		return err
	}
	selection, err := ui.Run(ctx)
	// Restore the terminal before printing
	screen.Fini()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, selection)

	if pruned, err := finder.PruneHistory(ctx); err != nil {
		slog.Warn("failed to prune history", "err", err)
	} else if pruned > 0 {
		slog.Debug("pruned history", "deleted", pruned)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	dir := c.String("history")
	if dir == "" {
		return errHistoryDisabled
	}
	cfg := config.NewConfig(config.WithHistory(dir, c.Int("history-size")))
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, err := badger.OpenHistoryRepository(cfg.HistoryPath, false, slog.Default())
	if err != nil {
		return err
	}
	defer repo.Close()

	if c.Bool("prune") {
		if cfg.HistorySize == 0 {
			return errPruneSize
		}
		pruned, err := repo.Prune(ctx, cfg.HistorySize)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "pruned %d entries\n", pruned)
		return nil
	}

	entries, err := repo.RecentEntries(ctx, c.Int("limit"))
	if err != nil {
		return err
	}
	return printHistory(c.App.Writer, entries)
}

func printHistory(w io.Writer, entries []*core.HistoryEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USES\tLAST USED\tQUERY\tSELECTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			e.Uses,
			e.LastUsed.Local().Format(time.DateTime),
			printable(e.Query),
			printable(e.Selection))
	}
	return tw.Flush()
}

// printable keeps one entry per line when a query or selection contains
// separators.
func printable(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\x00", " ").Replace(s)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
