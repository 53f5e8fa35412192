package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
)

// WriteTable выводит сводку и график в виде выровненной текстовой таблицы
func WriteTable(w io.Writer, s calculations.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Lease Liability\t%s\t\n", utils.FormatMoney(s.Summary.PresentValue))
	fmt.Fprintf(tw, "Right-of-Use Asset\t%s\t\n", utils.FormatMoney(s.Summary.InitialAssetValue))
	fmt.Fprintf(tw, "Monthly Depreciation\t%s\t\n", utils.FormatMoney(s.Summary.PeriodicAmortization))
	fmt.Fprintln(tw, "\t\t")

	for _, h := range Header {
		fmt.Fprintf(tw, "%s\t", h)
	}
	fmt.Fprintln(tw)

	for _, row := range s.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Period,
			utils.FormatMoney(row.OpeningBalance),
			utils.FormatMoney(row.Payment),
			utils.FormatMoney(row.InterestExpense),
			utils.FormatMoney(row.ClosingBalance),
			utils.FormatMoney(row.Amortization),
		)
	}

	totals := s.Totals()
	fmt.Fprintf(tw, "Total\t\t%s\t%s\t\t%s\t\n",
		utils.FormatMoney(totals.TotalPayments),
		utils.FormatMoney(totals.TotalInterestExpense),
		utils.FormatMoney(totals.TotalAmortization),
	)

	return tw.Flush()
}
