// Package export сериализует рассчитанный график: CSV, PDF, текстовая таблица, JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
)

// Format - формат выгрузки графика
type Format string

const (
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat разбирает название формата
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatCSV, FormatPDF, FormatTable, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", value)
}

// ContentType возвращает MIME-тип формата
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FileName возвращает имя файла для скачивания
func (f Format) FileName() string {
	switch f {
	case FormatCSV:
		return "IFRS16_Schedule.csv"
	case FormatPDF:
		return "IFRS16_Schedule.pdf"
	case FormatJSON:
		return "IFRS16_Schedule.json"
	default:
		return "IFRS16_Schedule.txt"
	}
}

// Write выгружает график в указанном формате
func Write(w io.Writer, format Format, s calculations.Schedule) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatPDF:
		return WritePDF(w, s)
	case FormatTable:
		return WriteTable(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
