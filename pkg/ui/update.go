package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdibot/dashboard/pkg/api"
	"github.com/tdibot/dashboard/pkg/pipeline"
)

// Update is the single place all state changes happen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.rebuildCharts()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case toastExpiredMsg:
		m.toasts.Expire(msg.id)

	case selectedMsg:
		if msg.err != nil {
			m.regions.Hide(RegionSymbols)
			m.log.Error().Err(msg.err).Msg("load selected symbols")
			cmds = append(cmds, m.toasts.Push(ToastError, "Failed to load trading symbols: "+msg.err.Error()))
			break
		}
		m.manager.ReplaceSelected(msg.symbols)
		// Only now is the universe safe to fetch: populating available
		// first would transiently show selected symbols as available.
		cmds = append(cmds, m.fetchUniverse())
		if sym := m.activeSymbol(); sym != "" && m.pipe.State() == pipeline.StateIdle {
			cmds = append(cmds, m.startPerformance(sym))
			cmds = append(cmds, m.scheduleAutoRefresh())
		}

	case universeMsg:
		m.regions.Hide(RegionSymbols)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("load symbol universe")
			cmds = append(cmds, m.toasts.Push(ToastError, "Failed to load available symbols: "+msg.err.Error()))
			break
		}
		if err := m.manager.ReplaceUniverse(msg.symbols); err != nil {
			cmds = append(cmds, m.toasts.Push(ToastError, err.Error()))
		}

	case performanceMsg:
		applied := m.pipe.Apply(msg.out)
		if !applied {
			m.log.Debug().Str("request", msg.out.Token.ID).Str("symbol", msg.out.Token.Symbol).
				Msg("discarded stale performance response")
			break
		}
		m.regions.Hide(RegionDashboard)
		if msg.out.Err != nil {
			m.log.Warn().Err(msg.out.Err).Str("symbol", msg.out.Token.Symbol).
				Str("class", msg.out.Class.String()).Msg("performance fetch failed")
			cmds = append(cmds, m.toasts.Push(ToastError, "Error loading performance data for "+msg.out.Token.Symbol))
		}
		m.rebuildCharts()

	case configLoadedMsg:
		if !m.tracker.Accept(msg.tok) {
			break
		}
		m.regions.Hide(RegionConfig)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("load backend config")
			cmds = append(cmds, m.toasts.Push(ToastError, "Failed to load configuration: "+msg.err.Error()))
			break
		}
		m.setConfigMap(msg.cfg)

	case configSavedMsg:
		if !m.tracker.Accept(msg.tok) {
			break
		}
		m.regions.Hide(RegionConfig)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("save backend config")
			cmds = append(cmds, m.toasts.Push(ToastError, "Failed to save configuration: "+msg.err.Error()))
			break
		}
		m.cfgDirty = false
		cmds = append(cmds, m.toasts.Push(ToastSuccess, "Configuration saved"))

	case symbolsSavedMsg:
		if !m.tracker.Accept(msg.tok) {
			break
		}
		m.regions.Hide(RegionSymbols)
		if msg.err != nil {
			// In-memory selection is untouched; the user can retry.
			m.log.Error().Err(msg.err).Msg("save trading symbols")
			cmds = append(cmds, m.toasts.Push(ToastError, "Failed to save trading symbols: "+msg.err.Error()))
			break
		}
		m.symbolsDirty = false
		cmds = append(cmds, m.toasts.Push(ToastSuccess, fmt.Sprintf("Saved %d trading symbols", msg.count)))
		// The chooser now reflects exactly the persisted set.
		if m.activeIdx >= msg.count {
			m.activeIdx = 0
		}
		if sym := m.activeSymbol(); sym != "" {
			cmds = append(cmds, m.startPerformance(sym))
		}

	case strategyMsg:
		if !m.tracker.Accept(msg.tok) {
			break
		}
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("symbol", msg.tok.Symbol).Msg("strategy run failed")
			cmds = append(cmds, m.toasts.Push(ToastError, "Strategy run failed: "+msg.err.Error()))
			break
		}
		cmds = append(cmds, m.toasts.Push(ToastSuccess, "Strategy pass for "+msg.tok.Symbol+": "+msg.action))
		cmds = append(cmds, m.startPerformance(msg.tok.Symbol))

	case autoRefreshMsg:
		if sym := m.activeSymbol(); sym != "" && m.tab == TabDashboard {
			cmds = append(cmds, m.startPerformance(sym))
		}
		cmds = append(cmds, m.scheduleAutoRefresh())
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text inputs swallow everything except escape and their commit keys.
	if m.searchFocus {
		return m.handleSearchKey(msg)
	}
	if m.cfgEditing {
		return m.handleConfigEditKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % 3
		if m.tab == TabConfig && !m.cfgLoaded {
			return m, m.startConfigLoad()
		}
		return m, nil
	}

	switch m.tab {
	case TabDashboard:
		return m.handleDashboardKey(msg)
	case TabSymbols:
		return m.handleSymbolsKey(msg)
	case TabConfig:
		return m.handleConfigKey(msg)
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Refresh):
		if sym := m.activeSymbol(); sym != "" {
			return m, m.startPerformance(sym)
		}

	case key.Matches(msg, keys.RunOnce):
		if sym := m.activeSymbol(); sym != "" {
			return m, m.startStrategyRun(sym)
		}

	case key.Matches(msg, keys.PrevSymbol):
		if n := len(m.manager.Selected()); n > 0 {
			m.activeIdx = (m.activeIdx - 1 + n) % n
			return m, m.startPerformance(m.activeSymbol())
		}

	case key.Matches(msg, keys.NextSymbol):
		if n := len(m.manager.Selected()); n > 0 {
			m.activeIdx = (m.activeIdx + 1) % n
			return m, m.startPerformance(m.activeSymbol())
		}
	}
	return m, nil
}

func (m Model) handleSymbolsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Search):
		m.searchFocus = true
		m.search.Focus()
		return m, nil

	case key.Matches(msg, keys.Save):
		return m, m.startSymbolsSave()

	case key.Matches(msg, keys.Left):
		m.pane = paneAvailable

	case key.Matches(msg, keys.Right):
		m.pane = paneSelected

	case key.Matches(msg, keys.Up):
		if m.pane == paneAvailable && m.availCursor > 0 {
			m.availCursor--
		}
		if m.pane == paneSelected && m.selCursor > 0 {
			m.selCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.pane == paneAvailable && m.availCursor < len(m.manager.Available())-1 {
			m.availCursor++
		}
		if m.pane == paneSelected && m.selCursor < len(m.manager.Selected())-1 {
			m.selCursor++
		}

	case key.Matches(msg, keys.Toggle):
		if m.pane == paneAvailable {
			avail := m.manager.Available()
			if m.availCursor < len(avail) {
				if m.manager.Select(avail[m.availCursor]) {
					m.symbolsDirty = true
				}
				if m.availCursor >= len(m.manager.Available()) && m.availCursor > 0 {
					m.availCursor--
				}
			}
		} else {
			sel := m.manager.Selected()
			if m.selCursor < len(sel) {
				if m.manager.Deselect(sel[m.selCursor]) {
					m.symbolsDirty = true
				}
				if m.selCursor >= len(m.manager.Selected()) && m.selCursor > 0 {
					m.selCursor--
				}
			}
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.searchFocus = false
		m.search.Blur()
		return m, nil
	case msg.String() == "enter":
		m.searchFocus = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.manager.Filter(m.search.Value())
	m.availCursor = 0
	return m, cmd
}

func (m Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Refresh):
		return m, m.startConfigLoad()

	case key.Matches(msg, keys.Save):
		if !m.cfgLoaded {
			return m, nil
		}
		// The form's unchecked flags must go out as explicit "False".
		// Normalization can force absent flag keys into the map, so the
		// rendered key list needs recomputing too.
		m.cfgMap.NormalizeBools()
		m.refreshConfigKeys()
		return m, m.startConfigSave()

	case key.Matches(msg, keys.Up):
		if m.cfgCursor > 0 {
			m.cfgCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cfgCursor < len(m.cfgKeys)-1 {
			m.cfgCursor++
		}

	case key.Matches(msg, keys.Toggle):
		if m.cfgCursor >= len(m.cfgKeys) {
			return m, nil
		}
		k := m.cfgKeys[m.cfgCursor]
		if api.IsBoolKey(k) {
			m.cfgMap.SetBool(k, !m.cfgMap.IsTrue(k))
			m.cfgDirty = true
			return m, nil
		}
		m.cfgEditing = true
		m.cfgInput.SetValue(m.cfgMap[k])
		m.cfgInput.CursorEnd()
		m.cfgInput.Focus()
	}
	return m, nil
}

func (m Model) handleConfigEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.cfgEditing = false
		m.cfgInput.Blur()
		return m, nil
	case msg.String() == "enter":
		k := m.cfgKeys[m.cfgCursor]
		if m.cfgMap[k] != m.cfgInput.Value() {
			m.cfgMap[k] = m.cfgInput.Value()
			m.cfgDirty = true
		}
		m.cfgEditing = false
		m.cfgInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.cfgInput, cmd = m.cfgInput.Update(msg)
	return m, cmd
}
