package calculations

// CompareTimings сравнивает графики с платежом в конце и в начале периода при одинаковых параметрах
func CompareTimings(payment float64, termPeriods int, annualRatePercent float64) TimingComparison {
	arrears := ComputeSchedule(ScheduleInput{
		Payment:           payment,
		TermPeriods:       termPeriods,
		AnnualRatePercent: annualRatePercent,
		Timing:            Arrears,
	})
	due := ComputeSchedule(ScheduleInput{
		Payment:           payment,
		TermPeriods:       termPeriods,
		AnnualRatePercent: annualRatePercent,
		Timing:            Due,
	})

	pvDiff := due.Summary.PresentValue - arrears.Summary.PresentValue
	interestDiff := arrears.Totals().TotalInterestExpense - due.Totals().TotalInterestExpense

	var recommendation string
	if pvDiff > 0 {
		recommendation = "Payments in advance recognise a larger lease liability and right-of-use asset, " +
			"but total interest expense over the term is lower."
	} else {
		recommendation = "At a zero discount rate payment timing does not change the lease liability or interest expense."
	}

	return TimingComparison{
		Arrears:                arrears,
		Due:                    due,
		PresentValueDifference: pvDiff,
		InterestDifference:     interestDiff,
		Recommendation:         recommendation,
	}
}
