package calculations

import (
	"math"
)

// TerminalSnapEpsilon - порог, ниже которого остаток последнего периода считается нулем
// (накопленная погрешность вычислений с плавающей точкой)
const TerminalSnapEpsilon = 1.0

// PeriodicRate переводит номинальную годовую ставку в процентах в ставку за период.
// Период всегда считается месяцем, независимо от того, что фактически означает TermPeriods.
func PeriodicRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100.0 / 12.0
}

// PresentValue рассчитывает приведенную стоимость аннуитета
func PresentValue(payment float64, termPeriods int, annualRatePercent float64, timing Timing) float64 {
	r := PeriodicRate(annualRatePercent)
	n := float64(termPeriods)

	var pv float64
	if r == 0.0 {
		pv = payment * n
	} else {
		pv = payment * (1.0 - math.Pow(1.0+r, -n)) / r
	}

	if timing == Due {
		pv = pv * (1.0 + r)
	}
	return pv
}

// ComputeSchedule рассчитывает график обязательства по аренде (МСФО 16).
// Входные данные не проверяются: вызывающая сторона обязана их провалидировать.
func ComputeSchedule(input ScheduleInput) Schedule {
	P := input.Payment
	n := input.TermPeriods
	r := PeriodicRate(input.AnnualRatePercent)

	liability := PresentValue(P, n, input.AnnualRatePercent, input.Timing)
	rouAsset := liability
	amortization := rouAsset / float64(n)

	rows := make([]ScheduleRow, 0, n)
	opening := liability

	for period := 1; period <= n; period++ {
		var interest, closing float64

		if input.Timing == Due {
			outstanding := opening - P
			interest = outstanding * r
			closing = outstanding + interest
		} else {
			interest = opening * r
			closing = opening + interest - P
		}

		if period == n {
			closing = snapTerminal(closing)
		}

		rows = append(rows, ScheduleRow{
			Period:          period,
			OpeningBalance:  opening,
			Payment:         P,
			InterestExpense: interest,
			ClosingBalance:  closing,
			Amortization:    amortization,
		})

		opening = closing
	}

	return Schedule{
		Input: input,
		Summary: ScheduleSummary{
			PresentValue:         liability,
			InitialAssetValue:    rouAsset,
			PeriodicAmortization: amortization,
		},
		Rows: rows,
	}
}

func snapTerminal(closing float64) float64 {
	if math.Abs(closing) < TerminalSnapEpsilon {
		return 0
	}
	return closing
}
