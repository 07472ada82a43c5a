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


package sift

import (
	"context"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/poiesic/sift/choices"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/input"
	"github.com/poiesic/sift/search"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
	"github.com/poiesic/sift/tui"
)

// Finder ties together the candidate store, the searcher and the optional
// query history.
type Finder struct {
	config      *config.Config
	store       *choices.Store
	searcher    *search.Searcher
	history     storage.HistoryRepository
	ownsHistory bool
	logger      *slog.Logger
}

// FinderOption configures a Finder.
type FinderOption func(*finderOptions)

type finderOptions struct {
	config  *config.Config
	history storage.HistoryRepository
	logger  *slog.Logger
}

// WithConfig sets the finder configuration.
// Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) FinderOption {
	return func(o *finderOptions) {
		o.config = cfg
	}
}

// WithHistoryRepository uses repo for history instead of opening
// config.HistoryPath. The caller keeps ownership of repo.
func WithHistoryRepository(repo storage.HistoryRepository) FinderOption {
	return func(o *finderOptions) {
		o.history = repo
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) FinderOption {
	return func(o *finderOptions) {
		o.logger = logger
	}
}

// NewFinder creates a finder with an empty store.
func NewFinder(opts ...FinderOption) (*Finder, error) {
	// Apply options
	options := &finderOptions{
		config: config.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = config.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if err := options.config.Validate(); err != nil {
		return nil, err
	}

	store := choices.NewStore()
	searcher, err := search.NewSearcher(store,
		search.WithWorkers(options.config.Workers),
		search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	f := &Finder{
		config:   options.config,
		store:    store,
		searcher: searcher,
		history:  options.history,
		logger:   options.logger,
	}

	// Open history database
	if f.history == nil && f.config.HistoryEnabled() {
		repo, err := badger.OpenHistoryRepository(f.config.HistoryPath, false, f.logger)
		if err != nil {
			searcher.Release()
			return nil, err
		}
		f.history = repo
		f.ownsHistory = true
	}

	return f, nil
}

// Close releases the worker pool and closes the history database if the
// finder opened it.
func (f *Finder) Close() error {
	f.searcher.Release()

	if f.ownsHistory {
		if err := f.history.Close(); err != nil {
			f.logger.Error("error closing history", "err", err)
			return err
		}
	}
	return nil
}

// Config returns the finder configuration.
func (f *Finder) Config() *config.Config {
	return f.config
}

// Store returns the candidate store.
func (f *Finder) Store() *choices.Store {
	return f.store
}

// History returns the history repository, or nil if history is disabled.
func (f *Finder) History() storage.HistoryRepository {
	return f.history
}

// Load reads delimited candidates from r until EOF.
func (f *Finder) Load(r io.Reader) (int64, error) {
	return f.store.ReadFrom(r, f.config.Delimiter)
}

// LoadFile reads candidates from path, or from standard input when path is
// empty or "-". Compressed input is decoded transparently.
func (f *Finder) LoadFile(path string) (int64, error) {
	rc, format, err := input.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := f.Load(rc)
	if err != nil {
		return n, err
	}
	f.logger.Debug("loaded candidates",
		"path", path,
		"format", format,
		"bytes", n,
		"candidates", f.store.Len())
	return n, nil
}

// Append adds the delimited candidates in block and returns how many were
// added.
func (f *Finder) Append(block []byte) int {
	return f.store.Append(block, f.config.Delimiter)
}

// Search ranks all candidates against query.
func (f *Finder) Search(query string) *search.Results {
	return f.searcher.Search(query)
}

// Results returns the ranking from the most recent search.
func (f *Finder) Results() *search.Results {
	return f.searcher.Results()
}

// NewInterface creates an interactive interface on screen, configured from
// the finder's settings and history.
func (f *Finder) NewInterface(screen tcell.Screen, opts ...tui.Option) (*tui.Interface, error) {
	base := []tui.Option{
		tui.WithConfig(f.config),
		tui.WithLogger(f.logger),
	}
	if f.history != nil {
		base = append(base, tui.WithHistory(f.history))
	}
	return tui.NewInterface(screen, f, append(base, opts...)...)
}

// PruneHistory trims history to config.HistorySize entries. It does nothing
// when history is disabled or the size is unlimited.
func (f *Finder) PruneHistory(ctx context.Context) (int, error) {
	if f.history == nil || f.config.HistorySize == 0 {
		return 0, nil
	}
	return f.history.Prune(ctx, f.config.HistorySize)
}
