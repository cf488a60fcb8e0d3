package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tdibot/dashboard/pkg/api"
	"github.com/tdibot/dashboard/pkg/pipeline"
)

// View renders the full screen for the active tab.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.tab {
	case TabDashboard:
		b.WriteString(m.viewDashboard())
	case TabSymbols:
		b.WriteString(m.viewSymbols())
	case TabConfig:
		b.WriteString(m.viewConfig())
	}

	if toasts := m.toasts.View(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("TDI Dashboard")
	names := [3]string{"Dashboard", "Symbols", "Config"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " "))
}

func (m Model) viewDashboard() string {
	sym := m.activeSymbol()
	if sym == "" {
		return dimStyle.Render("No trading symbols selected. Open the Symbols tab to pick some.")
	}

	var b strings.Builder
	b.WriteString(valueStyle.Render(sym))
	if n := len(m.manager.Selected()); n > 1 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d/%d, [ and ] to switch)", m.activeIdx+1, n)))
	}
	if m.regions.Active(RegionDashboard) {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("loading"))
	}
	b.WriteString("\n\n")

	switch m.pipe.State() {
	case pipeline.StateErrored:
		msg := errorStyle.Render("Error loading performance data: " + m.pipe.Err().Error())
		b.WriteString(panelStyle.Render(msg + "\n" + m.pipe.Guidance() + "\n" + dimStyle.Render("press r to retry")))
		return b.String()
	case pipeline.StateIdle, pipeline.StateLoading:
		if m.pipe.Payload() == nil {
			b.WriteString(dimStyle.Render("waiting for data..."))
			return b.String()
		}
	}

	payload := m.pipe.Payload()
	if payload == nil {
		b.WriteString(dimStyle.Render("no data"))
		return b.String()
	}

	b.WriteString(m.viewStats(payload))
	b.WriteString("\n")
	b.WriteString(m.viewPosition(payload.CurrentPosition))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(labelStyle.Render("Price") + "\n" + m.priceChart.View()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(labelStyle.Render("TDI") + "\n" + m.tdiChart.View()))
	b.WriteString("\n")
	b.WriteString(m.viewTrades(payload.Trades))
	return b.String()
}

func (m Model) viewStats(p *api.PerformancePayload) string {
	row := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("Trades"), valueStyle.Render(fmt.Sprintf("%d", p.Stats.TotalTrades)),
		labelStyle.Render("Win rate"), valueStyle.Render(fmt.Sprintf("%.1f%%", p.Stats.WinRate*100)),
		labelStyle.Render("Avg profit"), pctStyle(p.Stats.AvgProfit).Render(fmt.Sprintf("%+.2f%%", p.Stats.AvgProfit*100)),
		labelStyle.Render("Max drawdown"), errorStyle.Render(fmt.Sprintf("%.2f%%", p.Stats.MaxDrawdown*100)),
	)
	if len(p.Trades) == 0 {
		return panelStyle.Render(row)
	}

	// Equity sparkline over the returned trades, with the drawdown recomputed
	// from that sample next to the backend-reported figure above.
	equity := pipeline.EquityCurve(p.Trades)
	dd := pipeline.MaxDrawdown(equity)
	spark := renderArea(equity, 1.0, m.chartWidth(), 2, chartUpColor, chartDownColor)
	footer := dimStyle.Render(fmt.Sprintf("equity over %d trades, %.2f%% max drawdown on the returned sample",
		len(p.Trades), dd*100))
	return panelStyle.Render(row + "\n" + spark + "\n" + footer)
}

func (m Model) viewPosition(pos api.PositionInfo) string {
	if !pos.Open() {
		return panelStyle.Render(labelStyle.Render("Position") + " " + dimStyle.Render("flat"))
	}

	dirStyle := longStyle
	if pos.Position == api.DirectionShort {
		dirStyle = shortStyle
	}

	var parts []string
	parts = append(parts, labelStyle.Render("Position")+" "+dirStyle.Render(strings.ToUpper(pos.Position)))
	if pos.EntryPrice != nil {
		parts = append(parts, labelStyle.Render("Entry")+" "+valueStyle.Render(fmt.Sprintf("%.4f", *pos.EntryPrice)))
	}
	if pos.PositionSize != nil {
		parts = append(parts, labelStyle.Render("Size")+" "+valueStyle.Render(fmt.Sprintf("%.4f", *pos.PositionSize)))
	}
	if pos.StopLoss != nil {
		parts = append(parts, labelStyle.Render("Stop")+" "+valueStyle.Render(fmt.Sprintf("%.4f", *pos.StopLoss)))
	}
	if len(pos.TakeProfitLevels) > 0 {
		tps := make([]string, len(pos.TakeProfitLevels))
		for i, tp := range pos.TakeProfitLevels {
			tps[i] = fmt.Sprintf("%.4f", tp)
		}
		parts = append(parts, labelStyle.Render("TP")+" "+valueStyle.Render(strings.Join(tps, " / ")))
	}
	if rr, ok := pipeline.RiskReward(pos); ok {
		parts = append(parts, labelStyle.Render("R:R")+" "+valueStyle.Render(fmt.Sprintf("%.2f", rr)))
	} else {
		parts = append(parts, labelStyle.Render("R:R")+" "+dimStyle.Render("N/A"))
	}
	return panelStyle.Render(strings.Join(parts, "   "))
}

// tradeRowLimit caps the history table; older trades still count toward the
// totals line below it.
const tradeRowLimit = 10

func (m Model) viewTrades(trades []api.Trade) string {
	if len(trades) == 0 {
		return panelStyle.Render(labelStyle.Render("Trade history") + " " + dimStyle.Render("no closed trades yet"))
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Trade history"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%-17s %-6s %10s %10s %8s  %s",
		"exit", "dir", "entry", "exit", "pnl", "reason")))

	start := 0
	if len(trades) > tradeRowLimit {
		start = len(trades) - tradeRowLimit
	}
	// Newest last, like the ledger itself.
	for _, tr := range trades[start:] {
		dirStyle := longStyle
		if tr.Direction == api.DirectionShort {
			dirStyle = shortStyle
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-17s %s %10.4f %10.4f %s  %s",
			tr.ExitTime.Format("Jan 02 15:04"),
			dirStyle.Render(fmt.Sprintf("%-6s", tr.Direction)),
			tr.EntryPrice,
			tr.ExitPrice,
			pctStyle(tr.PnLPct).Render(fmt.Sprintf("%+7.2f%%", tr.PnLPct*100)),
			dimStyle.Render(tr.ExitReason),
		))
	}

	wins, rate := pipeline.RecomputeWinRate(trades)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d trades shown of %d, %d wins (%.1f%% of returned sample)",
		len(trades)-start, len(trades), wins, rate*100)))
	return panelStyle.Render(b.String())
}

func pctStyle(v float64) lipgloss.Style {
	if v > 0 {
		return successStyle
	}
	if v < 0 {
		return errorStyle
	}
	return valueStyle
}

func (m Model) viewSymbols() string {
	var b strings.Builder

	search := m.search.View()
	if !m.searchFocus && m.search.Value() == "" {
		search = dimStyle.Render("press / to search")
	}
	b.WriteString(search)
	if m.regions.Active(RegionSymbols) {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("working"))
	}
	if m.symbolsDirty {
		b.WriteString("  " + warnStyle.Render("unsaved changes, ctrl+s to save"))
	}
	b.WriteString("\n\n")

	avail := m.manager.Available()
	sel := m.manager.Selected()

	left := m.viewSymbolList(fmt.Sprintf("Available (%d)", len(avail)), avail,
		m.availCursor, m.pane == paneAvailable)
	right := m.viewSymbolList(fmt.Sprintf("Selected (%d)", len(sel)), sel,
		m.selCursor, m.pane == paneSelected)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	return b.String()
}

// symbolListHeight is how many rows each pane shows; the cursor scrolls the
// window.
const symbolListHeight = 14

func (m Model) viewSymbolList(title string, items []string, cursor int, focused bool) string {
	var b strings.Builder
	if focused {
		b.WriteString(valueStyle.Render(title))
	} else {
		b.WriteString(labelStyle.Render(title))
	}

	start := 0
	if cursor >= symbolListHeight {
		start = cursor - symbolListHeight + 1
	}
	end := start + symbolListHeight
	if end > len(items) {
		end = len(items)
	}

	if len(items) == 0 {
		b.WriteString("\n" + dimStyle.Render("(empty)"))
	}
	for i := start; i < end; i++ {
		b.WriteString("\n")
		if focused && i == cursor {
			b.WriteString(cursorStyle.Render("> " + items[i]))
		} else {
			b.WriteString("  " + items[i])
		}
	}
	for i := end - start; i < symbolListHeight; i++ {
		b.WriteString("\n")
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewConfig() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Backend configuration"))
	if m.regions.Active(RegionConfig) {
		b.WriteString("  " + m.spin.View() + dimStyle.Render("working"))
	}
	if m.cfgDirty {
		b.WriteString("  " + warnStyle.Render("unsaved changes, ctrl+s to save"))
	}
	b.WriteString("\n\n")

	if !m.cfgLoaded {
		b.WriteString(dimStyle.Render("loading configuration..."))
		return b.String()
	}

	var rows strings.Builder
	for i, k := range m.cfgKeys {
		if i > 0 {
			rows.WriteString("\n")
		}
		marker := "  "
		if i == m.cfgCursor {
			marker = cursorStyle.Render("> ")
		}

		var val string
		switch {
		case m.cfgEditing && i == m.cfgCursor:
			val = m.cfgInput.View()
		case api.IsBoolKey(k):
			if m.cfgMap.IsTrue(k) {
				val = successStyle.Render("[x]")
			} else {
				val = dimStyle.Render("[ ]")
			}
		default:
			val = valueStyle.Render(m.cfgMap[k])
		}
		rows.WriteString(fmt.Sprintf("%s%-32s %s", marker, labelStyle.Render(k), val))
	}
	b.WriteString(panelStyle.Render(rows.String()))
	return b.String()
}

func (m Model) viewHelp() string {
	var parts []string
	switch m.tab {
	case TabDashboard:
		parts = []string{"r refresh", "s run strategy", "[/] switch symbol"}
	case TabSymbols:
		parts = []string{"/ search", "←/→ pane", "enter select/remove", "ctrl+s save"}
	case TabConfig:
		parts = []string{"enter toggle/edit", "r reload", "ctrl+s save"}
	}
	parts = append(parts, "tab next tab", "q quit")
	return dimStyle.Render(strings.Join(parts, " · "))
}
