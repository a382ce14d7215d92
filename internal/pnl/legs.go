// Package pnl computes profit and loss for a Polymarket Yes position
// hedged with a Perpdex short.
//
// Every function in this package is pure: identical inputs always yield
// identical outputs and nothing is retained between calls.
package pnl

import "perp-hedge-lab/internal/domain"

// EntryOddSentinel is returned by the Polymarket leg when the entry odd is
// not positive. It is finite and far outside any realistic P&L so a chart
// shows it as an obvious outlier.
const EntryOddSentinel = 1_000_000.0

// PolymarketLegPnL returns the P&L of buying Yes shares at entryOdd with
// capital and exiting at resolveOdd:
//
//	pnl = capital * (resolveOdd/entryOdd - 1)
//
// finalPrice does not enter the formula; resolveOdd already encodes the
// outcome at that price (see ResolveOddAt).
func PolymarketLegPnL(finalPrice, entryOdd, resolveOdd, capital float64) float64 {
	if entryOdd <= 0 {
		return EntryOddSentinel
	}
	return capital * (resolveOdd/entryOdd - 1)
}

// PerpExit resolves the price at which the short is closed.
// Stop-loss is checked before take-profit.
func PerpExit(finalPrice float64, stopLoss, takeProfit *float64) (float64, string) {
	if stopLoss != nil && finalPrice >= *stopLoss {
		return *stopLoss, domain.ExitReasonStopLoss
	}
	if takeProfit != nil && finalPrice <= *takeProfit {
		return *takeProfit, domain.ExitReasonTakeProfit
	}
	return finalPrice, domain.ExitReasonFinalPrice
}

// PerpLegPnL returns the P&L of a short of positionSize entered at
// entryPrice, closed at the exit price chosen by PerpExit:
//
//	pnl = positionSize * (entryPrice - exitPrice) / entryPrice
func PerpLegPnL(finalPrice, positionSize, entryPrice float64, stopLoss, takeProfit *float64) float64 {
	exitPrice, _ := PerpExit(finalPrice, stopLoss, takeProfit)
	return shortPnL(positionSize, entryPrice, exitPrice)
}

func shortPnL(positionSize, entryPrice, exitPrice float64) float64 {
	return positionSize * (entryPrice - exitPrice) / entryPrice
}

// CombinedPnL sums both legs at finalPrice. The legs do not interact.
func CombinedPnL(finalPrice, entryOdd, resolveOdd float64, params domain.StrategyParameters) float64 {
	return PolymarketLegPnL(finalPrice, entryOdd, resolveOdd, params.CapitalPolymarket) +
		PerpLegPnL(finalPrice, params.PositionSizePerp, params.PerpEntryPrice, params.StopLossPrice, params.TakeProfitPrice)
}

// ResolveOddAt returns the odd received on the binary leg at finalPrice.
// An explicit odd models an early sale and is returned unchanged.
// Otherwise the market resolves Yes (1.0) only when finalPrice is strictly
// above conditionPrice; a tie resolves No (0.0).
func ResolveOddAt(finalPrice, conditionPrice float64, explicit *float64) float64 {
	if explicit != nil {
		return *explicit
	}
	if finalPrice > conditionPrice {
		return 1.0
	}
	return 0.0
}

// Evaluate computes the full per-leg breakdown at finalPrice.
func Evaluate(params domain.StrategyParameters, finalPrice float64) domain.Breakdown {
	resolveOdd := ResolveOddAt(finalPrice, params.ConditionPrice, params.ResolveOdd)
	exitPrice, reason := PerpExit(finalPrice, params.StopLossPrice, params.TakeProfitPrice)

	polyPnL := PolymarketLegPnL(finalPrice, params.EntryOdd, resolveOdd, params.CapitalPolymarket)
	perpPnL := shortPnL(params.PositionSizePerp, params.PerpEntryPrice, exitPrice)

	return domain.Breakdown{
		Price:          finalPrice,
		ResolveOdd:     resolveOdd,
		PolymarketPnL:  polyPnL,
		PerpExitPrice:  exitPrice,
		PerpExitReason: reason,
		PerpPnL:        perpPnL,
		NetPnL:         polyPnL + perpPnL,
	}
}
