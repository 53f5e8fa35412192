package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
)

const (
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	rowHeight    = 6.0
)

var columnWidths = []float64{16, 32, 28, 32, 32, 40}

// WritePDF формирует отчет A4: сводка и график по периодам
func WritePDF(w io.Writer, s calculations.Schedule) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("IFRS 16 Lease Schedule", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "IFRS 16 Lease Schedule", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	timing := "End of period (arrears)"
	if s.Input.Timing == calculations.Due {
		timing = "Start of period (in advance)"
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	summary := [][2]string{
		{"Periodic payment", utils.FormatMoney(s.Input.Payment)},
		{"Lease term (periods)", strconv.Itoa(s.Input.TermPeriods)},
		{"Annual discount rate", fmt.Sprintf("%g%%", s.Input.AnnualRatePercent)},
		{"Payment timing", timing},
		{"Lease liability", utils.FormatMoney(s.Summary.PresentValue)},
		{"Right-of-use asset", utils.FormatMoney(s.Summary.InitialAssetValue)},
		{"Monthly depreciation", utils.FormatMoney(s.Summary.PeriodicAmortization)},
	}
	for _, line := range summary {
		pdf.CellFormat(60, rowHeight, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(60, rowHeight, line[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	writePDFHeader(pdf)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range s.Rows {
		if pdf.GetY()+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Arial", "", 8)
			pdf.SetTextColor(0, 0, 0)
		}

		cells := MarshalRow(row)
		for i, text := range cells {
			pdf.CellFormat(columnWidths[i], rowHeight, text, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 236, 245)
	pdf.SetTextColor(0, 51, 102)
	for i, title := range Header {
		pdf.CellFormat(columnWidths[i], rowHeight, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
