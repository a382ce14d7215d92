package sweeps

import "github.com/shopspring/decimal"

// Band classifies a success or win rate percentage.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// RateBand maps a percentage to a band: >= 90 high, >= 70 medium, else low.
func RateBand(rate float64) Band {
	switch {
	case rate >= 90:
		return BandHigh
	case rate >= 70:
		return BandMedium
	default:
		return BandLow
	}
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// SweepSummary totals a page of sweeps.
type SweepSummary struct {
	Total          int             `json:"total"`
	Successful     int             `json:"successful"`
	Failed         int             `json:"failed"`
	SuccessRate    float64         `json:"success_rate"`
	Band           Band            `json:"band"`
	BigOddAskValue decimal.Decimal `json:"big_odd_ask_value"`
	PostOrderValue decimal.Decimal `json:"post_order_value"`
	ExecutedShare  float64         `json:"executed_share"` // post order value / big odd ask value, percent
}

// SummarizeSweeps totals sweeps.
func SummarizeSweeps(sweeps []Sweep) SweepSummary {
	s := SweepSummary{Total: len(sweeps)}
	for _, sw := range sweeps {
		if sw.IsSuccess {
			s.Successful++
		} else {
			s.Failed++
		}
		s.BigOddAskValue = s.BigOddAskValue.Add(decimal.NewFromFloat(sw.BigOddAskValue))
		s.PostOrderValue = s.PostOrderValue.Add(decimal.NewFromFloat(sw.PostOrderValue))
	}
	s.SuccessRate = percent(s.Successful, s.Total)
	s.Band = RateBand(s.SuccessRate)
	s.ExecutedShare = share(s.PostOrderValue, s.BigOddAskValue)
	return s
}

// SummarizeAggregated converts a server-side aggregate into a SweepSummary.
// The server's success rate is kept as reported.
func SummarizeAggregated(a SweepAggregatedData) SweepSummary {
	s := SweepSummary{
		Total:          a.TotalSweeps,
		Successful:     a.SuccessfulSweeps,
		Failed:         a.FailedSweeps,
		SuccessRate:    a.SuccessRate,
		BigOddAskValue: decimal.NewFromFloat(a.TotalBigOddAskValue),
		PostOrderValue: decimal.NewFromFloat(a.TotalPostOrderValue),
	}
	s.Band = RateBand(s.SuccessRate)
	s.ExecutedShare = share(s.PostOrderValue, s.BigOddAskValue)
	return s
}

func share(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// DailyTotals sums daily metrics over a range of days.
type DailyTotals struct {
	Days      int             `json:"days"`
	Sweeps    int             `json:"sweeps"`
	SentValue decimal.Decimal `json:"sent_value"`
	Profit    decimal.Decimal `json:"profit"`
	Loss      decimal.Decimal `json:"loss"`
	Net       decimal.Decimal `json:"net"`
	Wins      int             `json:"wins"`
	Losses    int             `json:"losses"`
	WinRate   float64         `json:"win_rate"`
	Band      Band            `json:"band"`
}

// SummarizeDaily sums daily metrics. The win rate is recomputed from the
// summed win and loss counts rather than averaged across days.
func SummarizeDaily(metrics []DailyMetric) DailyTotals {
	t := DailyTotals{Days: len(metrics)}
	for _, m := range metrics {
		t.Sweeps += m.TotalSweeps
		t.SentValue = t.SentValue.Add(decimal.NewFromFloat(m.TotalSentValue))
		t.Profit = t.Profit.Add(decimal.NewFromFloat(m.TotalProfit))
		t.Loss = t.Loss.Add(decimal.NewFromFloat(m.TotalLoss))
		t.Wins += m.WinSweeps
		t.Losses += m.LoseSweeps
	}
	t.Net = t.Profit.Sub(t.Loss)
	t.WinRate = percent(t.Wins, t.Wins+t.Losses)
	t.Band = RateBand(t.WinRate)
	return t
}

// UserTotals sums user daily metrics for one or more wallets.
type UserTotals struct {
	Wallets    int             `json:"wallets"`
	Days       int             `json:"days"`
	Trades     int             `json:"trades"`
	Volume     decimal.Decimal `json:"volume"`
	Value      decimal.Decimal `json:"value"`
	Profit     decimal.Decimal `json:"profit"`
	Loss       decimal.Decimal `json:"loss"`
	Net        decimal.Decimal `json:"net"`
	Profitable int             `json:"profitable_positions"`
	Losing     int             `json:"losing_positions"`
	WinRate    float64         `json:"win_rate"`
	Band       Band            `json:"band"`
}

// SummarizeUsers sums user daily metrics.
func SummarizeUsers(metrics []UserDailyMetric) UserTotals {
	t := UserTotals{Days: len(metrics)}
	wallets := make(map[string]struct{})
	for _, m := range metrics {
		wallets[m.ProxyWallet] = struct{}{}
		t.Trades += m.TotalTrades
		t.Volume = t.Volume.Add(decimal.NewFromFloat(m.TotalVolume))
		t.Value = t.Value.Add(decimal.NewFromFloat(m.TotalValue))
		t.Profit = t.Profit.Add(decimal.NewFromFloat(m.TotalProfit))
		t.Loss = t.Loss.Add(decimal.NewFromFloat(m.TotalLoss))
		t.Profitable += m.ProfitablePositions
		t.Losing += m.LosingPositions
	}
	t.Wallets = len(wallets)
	t.Net = t.Profit.Sub(t.Loss)
	t.WinRate = percent(t.Profitable, t.Profitable+t.Losing)
	t.Band = RateBand(t.WinRate)
	return t
}
