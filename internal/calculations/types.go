package calculations

// Timing определяет момент платежа внутри периода
type Timing string

const (
	// Arrears - платеж в конце периода (обычный аннуитет)
	Arrears Timing = "arrears"
	// Due - платеж в начале периода (аннуитет пренумерандо)
	Due Timing = "due"
)

// ScheduleInput представляет параметры расчета графика аренды.
// Значения должны быть провалидированы до вызова ComputeSchedule.
type ScheduleInput struct {
	Payment           float64 `json:"payment" yaml:"payment"`
	TermPeriods       int     `json:"term_periods" yaml:"term_periods"`
	AnnualRatePercent float64 `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	Timing            Timing  `json:"timing" yaml:"timing"`
}

// ScheduleSummary представляет сводку по обязательству и активу в форме права пользования
type ScheduleSummary struct {
	PresentValue         float64 `json:"present_value"`
	InitialAssetValue    float64 `json:"initial_asset_value"`
	PeriodicAmortization float64 `json:"periodic_amortization"`
}

// ScheduleRow представляет одну строку графика
type ScheduleRow struct {
	Period          int     `json:"period"`
	OpeningBalance  float64 `json:"opening_balance"`
	Payment         float64 `json:"payment"`
	InterestExpense float64 `json:"interest_expense"`
	ClosingBalance  float64 `json:"closing_balance"`
	Amortization    float64 `json:"amortization"`
}

// Schedule представляет результат расчета: сводку и строки по периодам
type Schedule struct {
	Input   ScheduleInput   `json:"input"`
	Summary ScheduleSummary `json:"summary"`
	Rows    []ScheduleRow   `json:"rows"`
}

// ScheduleTotals представляет итоги по графику
type ScheduleTotals struct {
	TotalPayments        float64 `json:"total_payments"`
	TotalInterestExpense float64 `json:"total_interest_expense"`
	TotalAmortization    float64 `json:"total_amortization"`
}

// Totals суммирует платежи, процентный расход и амортизацию по всем строкам
func (s Schedule) Totals() ScheduleTotals {
	var t ScheduleTotals
	for _, row := range s.Rows {
		t.TotalPayments += row.Payment
		t.TotalInterestExpense += row.InterestExpense
		t.TotalAmortization += row.Amortization
	}
	return t
}

// TimingComparison представляет результат сравнения графиков с платежом в конце и в начале периода
type TimingComparison struct {
	Arrears                Schedule `json:"arrears"`
	Due                    Schedule `json:"due"`
	PresentValueDifference float64  `json:"present_value_difference"`
	InterestDifference     float64  `json:"interest_difference"`
	Recommendation         string   `json:"recommendation"`
}
