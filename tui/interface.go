package tui

import (
	"context"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/match"
	"github.com/poiesic/sift/search"
	"github.com/rivo/uniseg"
)

// Searcher runs searches and holds the latest results.
type Searcher interface {
	Search(query string) *search.Results
	Results() *search.Results
}

// History records accepted queries and lists them for recall.
type History interface {
	AddEntry(ctx context.Context, query, selection string) (*core.HistoryEntry, error)
	RecentEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error)
}

var (
	styleNormal    = tcell.StyleDefault
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Interface is the interactive selector.
type Interface struct {
	screen   tcell.Screen
	searcher Searcher
	config   *config.Config
	history  History
	logger   *slog.Logger

	ctx       context.Context
	query     editor
	lastQuery string
	searched  bool
	lines     int // Result rows drawn at the current screen size

	scorer    match.Scorer
	positions []int

	recalled  []string // Distinct past queries, most recent first
	recallPos int

	done   bool
	output string
	err    error
}

// Option configures an Interface.
type Option func(*Interface) error

// WithConfig sets display and editing options.
// Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) Option {
	return func(ui *Interface) error {
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		ui.config = cfg
		return nil
	}
}

// WithHistory enables recording accepted queries and Ctrl-R recall.
func WithHistory(history History) Option {
	return func(ui *Interface) error {
		ui.history = history
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ui *Interface) error {
		if logger == nil {
			logger = slog.Default()
		}
		ui.logger = logger
		return nil
	}
}

// NewInterface creates an interface drawing on screen. The screen must
// already be initialized; the caller finalizes it after Run returns.
func NewInterface(screen tcell.Screen, searcher Searcher, opts ...Option) (*Interface, error) {
	if screen == nil {
		return nil, ErrScreenRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	ui := &Interface{
		screen:   screen,
		searcher: searcher,
		config:   config.DefaultConfig(),
		logger:   slog.Default(),
		ctx:      context.Background(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ui); err != nil {
			return nil, err
		}
	}

	ui.query.set(ui.config.InitialQuery)
	return ui, nil
}

// Run processes events until the user accepts or aborts, or ctx is done.
// It returns the selected candidate, or the query if nothing matched.
func (ui *Interface) Run(ctx context.Context) (string, error) {
	ui.ctx = ctx
	stop := context.AfterFunc(ctx, func() {
		_ = ui.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	ui.updateState()
	ui.draw()

	for !ui.done {
		switch ev := ui.screen.PollEvent().(type) {
		case nil:
			return "", ErrScreenClosed
		case *tcell.EventResize:
			ui.screen.Sync()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return "", err
			}
		case *tcell.EventKey:
			ui.handleKey(ev)
		}

		if ui.done || ui.screen.HasPendingEvent() {
			continue
		}
		ui.updateState()
		ui.draw()
	}
	return ui.output, ui.err
}

// Query returns the current query text.
func (ui *Interface) Query() string {
	return ui.query.String()
}

func (ui *Interface) handleKey(ev *tcell.EventKey) {
	if act := bindingFor(ev); act != nil {
		act(ui)
		return
	}
	if insertable(ev) {
		ui.query.insert(ev.Rune())
		ui.recallPos = 0
	}
}

// updateState searches if the query changed since the last search.
func (ui *Interface) updateState() {
	q := ui.query.String()
	if ui.searched && q == ui.lastQuery {
		return
	}
	ui.searcher.Search(q)
	ui.lastQuery = q
	ui.searched = true
}

// Actions

func (ui *Interface) abort() {
	ui.done = true
	ui.err = ErrAborted
}

func (ui *Interface) emit() {
	ui.updateState()
	query := ui.query.String()

	ui.output = query
	selection := ""
	if c, ok := ui.searcher.Results().Selected(); ok {
		ui.output = c.Text
		selection = c.Text
	}
	ui.done = true

	if ui.history != nil && query != "" {
		if _, err := ui.history.AddEntry(ui.ctx, query, selection); err != nil {
			ui.logger.Warn("failed to record history", "err", err)
		}
	}
}

func (ui *Interface) deleteChar() {
	ui.query.deleteBackward()
}

func (ui *Interface) deleteWord() {
	ui.query.deleteWord()
}

func (ui *Interface) deleteAll() {
	ui.query.deleteToStart()
}

func (ui *Interface) autocomplete() {
	ui.updateState()
	if c, ok := ui.searcher.Results().Selected(); ok {
		ui.query.set(c.Text)
	}
}

func (ui *Interface) prev() {
	ui.updateState()
	ui.searcher.Results().SelectPrev()
}

func (ui *Interface) next() {
	ui.updateState()
	ui.searcher.Results().SelectNext()
}

// pageUp moves the selection up one page, stopping at the first result.
func (ui *Interface) pageUp() {
	ui.updateState()
	results := ui.searcher.Results()
	for i := 0; i < ui.pageSize() && results.Selection() > 0; i++ {
		results.SelectPrev()
	}
}

// pageDown moves the selection down one page, stopping at the last result.
func (ui *Interface) pageDown() {
	ui.updateState()
	results := ui.searcher.Results()
	for i := 0; i < ui.pageSize() && results.Selection() < results.Available()-1; i++ {
		results.SelectNext()
	}
}

func (ui *Interface) pageSize() int {
	if ui.lines > 0 {
		return ui.lines
	}
	return ui.config.Lines
}

func (ui *Interface) beginning() {
	ui.query.home()
}

func (ui *Interface) end() {
	ui.query.end()
}

func (ui *Interface) left() {
	ui.query.left()
}

func (ui *Interface) right() {
	ui.query.right()
}

// recall replaces the query with the next older distinct query from history.
func (ui *Interface) recall() {
	if ui.history == nil {
		return
	}
	if ui.recalled == nil {
		if err := ui.loadRecalled(); err != nil {
			ui.logger.Warn("failed to load history", "err", err)
			return
		}
	}
	if len(ui.recalled) == 0 {
		return
	}
	ui.query.set(ui.recalled[ui.recallPos%len(ui.recalled)])
	ui.recallPos++
}

func (ui *Interface) loadRecalled() error {
	limit := ui.config.HistorySize
	if limit < 1 {
		limit = config.DefaultConfig().HistorySize
	}
	entries, err := ui.history.RecentEntries(ui.ctx, limit)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(entries))
	ui.recalled = make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Query == "" || seen[entry.Query] {
			continue
		}
		seen[entry.Query] = true
		ui.recalled = append(ui.recalled, entry.Query)
	}
	return nil
}

// Drawing

// visibleLines returns the number of result rows that fit on a screen of
// the given height.
func (ui *Interface) visibleLines(height int) int {
	header := 1
	if ui.config.ShowInfo {
		header++
	}
	return max(min(ui.config.Lines, height-header), 0)
}

// firstVisible returns the rank drawn on the first result row, keeping
// Scrolloff rows visible below the selection.
func firstVisible(selection, available, lines, scrolloff int) int {
	start := 0
	if selection+scrolloff >= lines {
		start = selection + scrolloff - lines + 1
		if start+lines >= available && available > 0 {
			start = available - lines
		}
	}
	return max(start, 0)
}

func (ui *Interface) draw() {
	ui.screen.Clear()
	width, height := ui.screen.Size()
	ui.lines = ui.visibleLines(height)
	results := ui.searcher.Results()

	row := 0
	x := putString(ui.screen, 0, row, width, ui.config.Prompt, styleNormal)
	putString(ui.screen, x, row, width, ui.query.String(), styleNormal)
	row++

	if ui.config.ShowInfo {
		info := fmt.Sprintf("[%d/%d]", results.Available(), results.Total())
		putString(ui.screen, 0, row, width, info, styleNormal)
		row++
	}

	start := firstVisible(results.Selection(), results.Available(), ui.lines, ui.config.Scrolloff)
	for rank := start; rank < start+ui.lines; rank++ {
		c, ok := results.Get(rank)
		if !ok {
			break
		}
		ui.drawMatch(row, width, c, results.ScoreAt(rank), rank == results.Selection())
		row++
	}

	cursor := uniseg.StringWidth(ui.config.Prompt) + uniseg.StringWidth(ui.query.beforeCursor())
	ui.screen.ShowCursor(min(cursor, max(width-1, 0)), 0)
	ui.screen.Show()
}

// drawMatch draws one result row, highlighting the characters the query
// matched.
func (ui *Interface) drawMatch(row, width int, c core.Candidate, score core.Score, selected bool) {
	x := 0
	if ui.config.ShowScores {
		label := "(     ) "
		if score != core.ScoreMin {
			label = fmt.Sprintf("(%5.2f) ", float64(score))
		}
		x = putString(ui.screen, x, row, width, label, styleNormal)
	}

	query := ui.lastQuery
	ui.positions = ui.positions[:0]
	for range len(query) {
		ui.positions = append(ui.positions, -1)
	}
	if query != "" {
		ui.scorer.Positions(query, c.Text, ui.positions)
	}

	normal, highlight := styleNormal, styleHighlight
	if selected {
		normal, highlight = normal.Reverse(true), highlight.Reverse(true)
	}

	p := 0
	for i, r := range c.Text {
		if x >= width {
			break
		}
		style := normal
		for p < len(ui.positions) && ui.positions[p] < i {
			p++
		}
		if p < len(ui.positions) && ui.positions[p] == i {
			style = highlight
		}
		x = putRune(ui.screen, x, row, r, style)
	}
	if selected {
		// Extend the selection bar to the edge of the screen
		for ; x < width; x++ {
			ui.screen.SetContent(x, row, ' ', nil, normal)
		}
	}
}

// putString draws s from column x, clipped to width, and returns the column
// after the last cell drawn.
func putString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= width {
			break
		}
		x = putRune(screen, x, y, r, style)
	}
	return x
}

func putRune(screen tcell.Screen, x, y int, r rune, style tcell.Style) int {
	if !unicode.IsPrint(r) {
		r = ' '
	}
	screen.SetContent(x, y, r, nil, style)
	return x + max(uniseg.StringWidth(string(r)), 1)
}
