package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
)

// Header - заголовок CSV-выгрузки графика
var Header = []string{
	"Period",
	"Opening Balance",
	"Payment",
	"Interest Expense",
	"Closing Balance",
	"Amortization/Depreciation",
}

// WriteCSV пишет график в CSV (с заголовком, строки через CRLF)
func WriteCSV(w io.Writer, s calculations.Schedule) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range s.Rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing period %d: %w", row.Period, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MarshalRow преобразует строку графика в поля CSV; суммы - ровно два знака после запятой
func MarshalRow(row calculations.ScheduleRow) []string {
	return []string{
		strconv.Itoa(row.Period),
		utils.Fixed2(row.OpeningBalance),
		utils.Fixed2(row.Payment),
		utils.Fixed2(row.InterestExpense),
		utils.Fixed2(row.ClosingBalance),
		utils.Fixed2(row.Amortization),
	}
}
