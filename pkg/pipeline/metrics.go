package pipeline

import "github.com/tdibot/dashboard/pkg/api"

// RiskReward derives the risk/reward ratio for an open position from its
// entry, stop loss and first take-profit level:
//
//	long:  risk = entry - stop, reward = firstTP - entry
//	short: risk = stop - entry, reward = entry - firstTP
//
// The second return is false when the ratio is undefined: no open position,
// any required price absent, or zero risk.
func RiskReward(pos api.PositionInfo) (float64, bool) {
	if !pos.Open() {
		return 0, false
	}
	if pos.EntryPrice == nil || pos.StopLoss == nil || len(pos.TakeProfitLevels) == 0 {
		return 0, false
	}

	entry := *pos.EntryPrice
	stop := *pos.StopLoss
	firstTP := pos.TakeProfitLevels[0]

	var risk, reward float64
	if pos.Position == api.DirectionLong {
		risk = entry - stop
		reward = firstTP - entry
	} else {
		risk = stop - entry
		reward = entry - firstTP
	}
	if risk == 0 {
		return 0, false
	}
	return reward / risk, true
}

// RecomputeWinRate recounts the win rate over the returned trade sample. A
// trade counts as a win only when pnl_pct is strictly positive. This is the
// dashboard's second win-rate figure, computed independently of the
// backend-reported stats.win_rate; the two can diverge because they are
// derived from different data and both are displayed.
func RecomputeWinRate(trades []api.Trade) (wins int, rate float64) {
	if len(trades) == 0 {
		return 0, 0
	}
	for _, tr := range trades {
		if tr.PnLPct > 0 {
			wins++
		}
	}
	return wins, float64(wins) / float64(len(trades))
}

// MaxDrawdown computes the largest peak-to-trough decline over an equity
// series, returned as a non-positive fraction (-0.15 means a 15% drawdown).
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0]
	maxDD := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (v - peak) / peak
			if dd < maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// EquityCurve folds the trade ledger into a compounded equity series
// starting at 1.0, one point per closed trade. Used for the drawdown
// sparkline under the stats panel.
func EquityCurve(trades []api.Trade) []float64 {
	out := make([]float64, 0, len(trades)+1)
	equity := 1.0
	out = append(out, equity)
	for _, tr := range trades {
		equity *= 1 + tr.PnLPct
		out = append(out, equity)
	}
	return out
}
