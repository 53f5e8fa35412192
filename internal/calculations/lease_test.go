package calculations

import (
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.6f, want %.6f (±%v)", name, got, want, tol)
	}
}

func TestComputeSchedule(t *testing.T) {
	tests := []struct {
		name          string
		input         ScheduleInput
		checkSchedule func(*testing.T, Schedule)
	}{
		{
			name:  "arrears 1000 x 12 at 6%",
			input: ScheduleInput{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 6, Timing: Arrears},
			checkSchedule: func(t *testing.T, s Schedule) {
				if len(s.Rows) != 12 {
					t.Fatalf("expected 12 rows, got %d", len(s.Rows))
				}
				approx(t, "present value", s.Summary.PresentValue, 11618.93, 0.01)
				approx(t, "periodic amortization", s.Summary.PeriodicAmortization, 968.24, 0.01)
				approx(t, "row 1 interest", s.Rows[0].InterestExpense, 58.09, 0.01)
				approx(t, "row 1 closing", s.Rows[0].ClosingBalance, 10677.03, 0.01)
				if s.Rows[0].OpeningBalance != s.Summary.PresentValue {
					t.Errorf("row 1 opening %v != present value %v", s.Rows[0].OpeningBalance, s.Summary.PresentValue)
				}
				if last := s.Rows[11].ClosingBalance; last != 0 {
					t.Errorf("expected final closing balance 0, got %v", last)
				}
			},
		},
		{
			name:  "due 1000 x 12 at 6%",
			input: ScheduleInput{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 6, Timing: Due},
			checkSchedule: func(t *testing.T, s Schedule) {
				approx(t, "present value", s.Summary.PresentValue, 11677.03, 0.01)
				approx(t, "row 1 interest", s.Rows[0].InterestExpense, 53.39, 0.01)
				want := (s.Rows[0].OpeningBalance - 1000) * 0.005
				if s.Rows[0].InterestExpense != want {
					t.Errorf("row 1 interest %v, want (opening - payment) * r = %v", s.Rows[0].InterestExpense, want)
				}
				if last := s.Rows[11].ClosingBalance; last != 0 {
					t.Errorf("expected final closing balance 0, got %v", last)
				}
			},
		},
		{
			name:  "zero rate",
			input: ScheduleInput{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 0, Timing: Arrears},
			checkSchedule: func(t *testing.T, s Schedule) {
				if s.Summary.PresentValue != 12000 {
					t.Errorf("expected present value 12000, got %v", s.Summary.PresentValue)
				}
				for _, row := range s.Rows {
					if row.InterestExpense != 0 {
						t.Errorf("period %d: expected zero interest, got %v", row.Period, row.InterestExpense)
					}
					if row.ClosingBalance != row.OpeningBalance-row.Payment {
						t.Errorf("period %d: closing %v != opening - payment %v",
							row.Period, row.ClosingBalance, row.OpeningBalance-row.Payment)
					}
				}
				if last := s.Rows[len(s.Rows)-1].ClosingBalance; last != 0 {
					t.Errorf("expected final closing balance 0, got %v", last)
				}
			},
		},
		{
			name:  "zero rate due",
			input: ScheduleInput{Payment: 750, TermPeriods: 60, AnnualRatePercent: 0, Timing: Due},
			checkSchedule: func(t *testing.T, s Schedule) {
				if s.Summary.PresentValue != 45000 {
					t.Errorf("expected present value 45000, got %v", s.Summary.PresentValue)
				}
				for _, row := range s.Rows {
					if row.InterestExpense != 0 {
						t.Errorf("period %d: expected zero interest, got %v", row.Period, row.InterestExpense)
					}
				}
			},
		},
		{
			name:  "single period",
			input: ScheduleInput{Payment: 500, TermPeriods: 1, AnnualRatePercent: 12, Timing: Arrears},
			checkSchedule: func(t *testing.T, s Schedule) {
				if len(s.Rows) != 1 {
					t.Fatalf("expected 1 row, got %d", len(s.Rows))
				}
				approx(t, "present value", s.Summary.PresentValue, 500/1.01, 1e-9)
				if s.Rows[0].ClosingBalance != 0 {
					t.Errorf("expected closing 0, got %v", s.Rows[0].ClosingBalance)
				}
			},
		},
		{
			name:  "long lease",
			input: ScheduleInput{Payment: 500, TermPeriods: 600, AnnualRatePercent: 12, Timing: Due},
			checkSchedule: func(t *testing.T, s Schedule) {
				approx(t, "present value", s.Summary.PresentValue, 50371.04, 0.01)
				if last := s.Rows[599].ClosingBalance; last != 0 {
					t.Errorf("expected final closing balance 0, got %v", last)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkSchedule(t, ComputeSchedule(tt.input))
		})
	}
}

func TestComputeSchedule_Invariants(t *testing.T) {
	inputs := []ScheduleInput{
		{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 6, Timing: Arrears},
		{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 6, Timing: Due},
		{Payment: 2500, TermPeriods: 36, AnnualRatePercent: 4.5, Timing: Arrears},
		{Payment: 1234.56, TermPeriods: 120, AnnualRatePercent: 7.25, Timing: Due},
		{Payment: 750, TermPeriods: 60, AnnualRatePercent: 0, Timing: Arrears},
	}

	for _, in := range inputs {
		s := ComputeSchedule(in)

		if s.Summary.InitialAssetValue != s.Summary.PresentValue {
			t.Errorf("%+v: initial asset value %v != present value %v", in, s.Summary.InitialAssetValue, s.Summary.PresentValue)
		}

		for i := 0; i < len(s.Rows)-1; i++ {
			if s.Rows[i].ClosingBalance != s.Rows[i+1].OpeningBalance {
				t.Errorf("%+v: period %d closing %v != period %d opening %v",
					in, i+1, s.Rows[i].ClosingBalance, i+2, s.Rows[i+1].OpeningBalance)
			}
		}

		for i, row := range s.Rows {
			if row.Period != i+1 {
				t.Errorf("%+v: row %d has period %d", in, i, row.Period)
			}
		}

		approx(t, "amortization sum", s.Totals().TotalAmortization, s.Summary.InitialAssetValue, 1e-6)
	}
}

func TestPresentValue_DueIsArrearsShiftedOnePeriod(t *testing.T) {
	for _, rate := range []float64{0.5, 6, 12, 24} {
		r := PeriodicRate(rate)
		arrears := PresentValue(1000, 48, rate, Arrears)
		due := PresentValue(1000, 48, rate, Due)
		if due != arrears*(1+r) {
			t.Errorf("rate %v: due %v != arrears * (1 + r) %v", rate, due, arrears*(1+r))
		}
	}
}

func TestPeriodicRate(t *testing.T) {
	if got := PeriodicRate(6); got != 0.005 {
		t.Errorf("PeriodicRate(6) = %v, want 0.005", got)
	}
	if got := PeriodicRate(0); got != 0 {
		t.Errorf("PeriodicRate(0) = %v, want 0", got)
	}
}

func TestSnapTerminal(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{2.5e-10, 0},
		{-0.99, 0},
		{0.5, 0},
		{1.0, 1.0},
		{-1.5, -1.5},
		{250, 250},
	}

	for _, tt := range tests {
		if got := snapTerminal(tt.input); got != tt.want {
			t.Errorf("snapTerminal(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComputeSchedule_DoesNotRound(t *testing.T) {
	s := ComputeSchedule(ScheduleInput{Payment: 1000, TermPeriods: 12, AnnualRatePercent: 6, Timing: Arrears})
	if s.Rows[0].InterestExpense == math.Round(s.Rows[0].InterestExpense*100)/100 {
		t.Errorf("interest expense %v looks rounded to cents", s.Rows[0].InterestExpense)
	}
}
