package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// Fixed2 форматирует число ровно с двумя знаками после запятой, без разделителей разрядов
func Fixed2(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// FormatMoney форматирует сумму в долларах США: $1,234.56, -$1,234.56
func FormatMoney(value float64) string {
	s := Fixed2(value)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + fracPart
}
