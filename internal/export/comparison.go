package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
)

// WriteComparisonTable выводит сводки обоих вариантов и разницу между ними
func WriteComparisonTable(w io.Writer, c calculations.TimingComparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	arrears, due := c.Arrears.Totals(), c.Due.Totals()

	fmt.Fprintln(tw, "\tEnd of period\tStart of period\t")
	fmt.Fprintf(tw, "Lease Liability\t%s\t%s\t\n",
		utils.FormatMoney(c.Arrears.Summary.PresentValue), utils.FormatMoney(c.Due.Summary.PresentValue))
	fmt.Fprintf(tw, "Monthly Depreciation\t%s\t%s\t\n",
		utils.FormatMoney(c.Arrears.Summary.PeriodicAmortization), utils.FormatMoney(c.Due.Summary.PeriodicAmortization))
	fmt.Fprintf(tw, "Total Interest Expense\t%s\t%s\t\n",
		utils.FormatMoney(arrears.TotalInterestExpense), utils.FormatMoney(due.TotalInterestExpense))
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintf(tw, "Liability difference\t%s\t\t\n", utils.FormatMoney(c.PresentValueDifference))
	fmt.Fprintf(tw, "Interest difference\t%s\t\t\n", utils.FormatMoney(c.InterestDifference))

	if err := tw.Flush(); err != nil {
		return err
	}
	if c.Recommendation != "" {
		_, err := fmt.Fprintln(w, c.Recommendation)
		return err
	}
	return nil
}
