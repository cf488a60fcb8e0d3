// Package ui is the terminal dashboard. It follows the Elm-style
// model/update/view split: every backend round-trip runs as a command off
// the update loop and settles as a typed message, so all view state is
// mutated from a single goroutine.
package ui

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tdibot/dashboard/pkg/api"
	"github.com/tdibot/dashboard/pkg/config"
	"github.com/tdibot/dashboard/pkg/pipeline"
	"github.com/tdibot/dashboard/pkg/symbols"
)

// Tab identifies one of the dashboard's screens.
type Tab int

const (
	TabDashboard Tab = iota
	TabSymbols
	TabConfig
)

// Messages carrying settled network results back onto the update loop.
type (
	selectedMsg struct {
		symbols []string
		err     error
	}

	universeMsg struct {
		symbols []string
		err     error
	}

	performanceMsg struct {
		out pipeline.Outcome
	}

	configLoadedMsg struct {
		tok pipeline.Token
		cfg api.ConfigMap
		err error
	}

	configSavedMsg struct {
		tok pipeline.Token
		err error
	}

	symbolsSavedMsg struct {
		tok   pipeline.Token
		count int
		err   error
	}

	strategyMsg struct {
		tok    pipeline.Token
		action string
		err    error
	}

	autoRefreshMsg struct{}
)

// symbolsPane identifies which half of the symbols tab has focus.
type symbolsPane int

const (
	paneAvailable symbolsPane = iota
	paneSelected
)

// Model is the dashboard's entire state.
type Model struct {
	client *api.Client
	cfg    *config.Config
	log    zerolog.Logger

	manager *symbols.Manager
	pipe    *pipeline.Pipeline
	// tracker tags the non-performance requests (config, symbols save,
	// strategy runs) so superseded responses are dropped.
	tracker *pipeline.Tracker

	toasts  ToastStack
	regions *Regions
	spin    spinner.Model

	// Dashboard tab
	activeIdx  int
	priceChart *Surface
	tdiChart   *Surface

	// Symbols tab
	search       textinput.Model
	searchFocus  bool
	pane         symbolsPane
	availCursor  int
	selCursor    int
	symbolsDirty bool

	// Config tab
	cfgMap     api.ConfigMap
	cfgKeys    []string
	cfgCursor  int
	cfgInput   textinput.Model
	cfgEditing bool
	cfgDirty   bool
	cfgLoaded  bool

	tab    Tab
	width  int
	height int
	ready  bool
}

// NewModel wires the dashboard against the given backend client.
func NewModel(client *api.Client, cfg *config.Config, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "search symbols"
	search.CharLimit = 20

	cfgInput := textinput.New()
	cfgInput.CharLimit = 128

	return Model{
		client:   client,
		cfg:      cfg,
		log:      log,
		manager:  symbols.NewManager(client),
		pipe:     pipeline.New(client),
		tracker:  pipeline.NewTracker(),
		regions:  NewRegions(),
		spin:     sp,
		search:   search,
		cfgInput: cfgInput,
	}
}

// Init starts the initial load sequence. The selected set must be known
// before the universe is fetched, so the universe fetch is chained off the
// selectedMsg handler rather than batched here.
func (m Model) Init() tea.Cmd {
	m.regions.Show(RegionSymbols)
	return tea.Batch(m.fetchSelected(), m.spin.Tick)
}

// activeSymbol returns the symbol the dashboard tab currently shows.
func (m Model) activeSymbol() string {
	sel := m.manager.Selected()
	if len(sel) == 0 {
		return ""
	}
	if m.activeIdx >= len(sel) {
		return sel[len(sel)-1]
	}
	return sel[m.activeIdx]
}

// Commands

func (m Model) fetchSelected() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		syms, err := client.TradingSymbols(context.Background())
		return selectedMsg{symbols: syms, err: err}
	}
}

func (m Model) fetchUniverse() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		syms, err := client.Symbols(context.Background())
		return universeMsg{symbols: syms, err: err}
	}
}

// startPerformance enters Loading for symbol and returns the fetch command.
func (m *Model) startPerformance(symbol string) tea.Cmd {
	tok := m.pipe.Start(symbol)
	m.regions.Show(RegionDashboard)
	m.log.Debug().Str("symbol", symbol).Str("request", tok.ID).Msg("performance refresh")
	pipe := m.pipe
	return func() tea.Msg {
		return performanceMsg{out: pipe.Fetch(context.Background(), tok)}
	}
}

func (m *Model) startConfigLoad() tea.Cmd {
	tok := m.tracker.Begin(pipeline.PurposeConfig, "")
	m.regions.Show(RegionConfig)
	client := m.client
	return func() tea.Msg {
		cfg, err := client.Config(context.Background())
		return configLoadedMsg{tok: tok, cfg: cfg, err: err}
	}
}

func (m *Model) startConfigSave() tea.Cmd {
	tok := m.tracker.Begin(pipeline.PurposeConfig, "")
	m.regions.Show(RegionConfig)
	snapshot := m.cfgMap.Clone()
	client := m.client
	return func() tea.Msg {
		return configSavedMsg{tok: tok, err: client.SaveConfig(context.Background(), snapshot)}
	}
}

func (m *Model) startSymbolsSave() tea.Cmd {
	tok := m.tracker.Begin(pipeline.PurposeSymbols, "")
	m.regions.Show(RegionSymbols)
	snapshot := m.manager.Selected()
	client := m.client
	return func() tea.Msg {
		err := client.SaveTradingSymbols(context.Background(), snapshot)
		return symbolsSavedMsg{tok: tok, count: len(snapshot), err: err}
	}
}

func (m *Model) startStrategyRun(symbol string) tea.Cmd {
	tok := m.tracker.Begin(pipeline.PurposeStrategyRun, symbol)
	client := m.client
	return func() tea.Msg {
		action, err := client.RunStrategy(context.Background(), symbol)
		return strategyMsg{tok: tok, action: action, err: err}
	}
}

func (m Model) scheduleAutoRefresh() tea.Cmd {
	interval := m.cfg.RefreshInterval()
	if interval == 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

// rebuildCharts disposes the old chart surfaces and builds fresh ones from
// the latest payload. There is deliberately no incremental path.
func (m *Model) rebuildCharts() {
	m.priceChart.Dispose()
	m.tdiChart.Dispose()
	m.priceChart = nil
	m.tdiChart = nil

	payload := m.pipe.Payload()
	if payload == nil {
		return
	}
	w := m.chartWidth()
	m.priceChart = NewPriceSurface(payload.PriceData, w, 6)
	m.tdiChart = NewTDISurface(payload.TDIData, w, 6)
}

func (m Model) chartWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}
	return w
}

// setConfigMap installs a freshly loaded backend config for editing.
func (m *Model) setConfigMap(cfg api.ConfigMap) {
	m.cfgMap = cfg
	m.refreshConfigKeys()
	if m.cfgCursor >= len(m.cfgKeys) {
		m.cfgCursor = 0
	}
	m.cfgLoaded = true
	m.cfgDirty = false
}

// refreshConfigKeys recomputes the sorted key list. Must be called whenever
// cfgMap gains keys, e.g. after bool normalization forces absent flags in.
func (m *Model) refreshConfigKeys() {
	m.cfgKeys = make([]string, 0, len(m.cfgMap))
	for k := range m.cfgMap {
		m.cfgKeys = append(m.cfgKeys, k)
	}
	sort.Strings(m.cfgKeys)
}
