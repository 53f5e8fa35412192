package validators

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
)

// ValidationError описывает ошибку во входном параметре
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError сообщает, вызвана ли ошибка неверными входными данными
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &ValidationError{Field: name, Message: "must be a finite number"}
	}
	if value < minInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("must be at least %g", minInclusive)}
	}
	if value > maxInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("must not exceed %g", maxInclusive)}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return &ValidationError{
			Field:   name,
			Message: fmt.Sprintf("must be between %d and %d", minInclusive, maxInclusive),
		}
	}
	return nil
}

// CheckPayment проверяет сумму периодического платежа
func CheckPayment(cfg *config.Config, payment float64) error {
	if payment <= 0 {
		return &ValidationError{Field: "payment", Message: "must be greater than 0"}
	}
	return ValidatePositiveNumber("payment", payment, 0.0, cfg.MaxPayment)
}

// CheckRate проверяет годовую ставку дисконтирования
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckTermPeriods проверяет срок аренды в периодах
func CheckTermPeriods(cfg *config.Config, termPeriods int) error {
	return ValidateIntRange("term_periods", termPeriods, 1, cfg.MaxTermPeriods)
}

// ParseTiming разбирает момент платежа: end/arrears или start/due/advance
func ParseTiming(value string) (calculations.Timing, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "end", "arrears":
		return calculations.Arrears, nil
	case "start", "due", "advance":
		return calculations.Due, nil
	}
	return "", &ValidationError{Field: "timing", Message: fmt.Sprintf("unknown payment timing %q (expected end or start)", value)}
}

// CheckInput проверяет все поля ScheduleInput
func CheckInput(cfg *config.Config, in calculations.ScheduleInput) error {
	if err := CheckPayment(cfg, in.Payment); err != nil {
		return err
	}
	if err := CheckTermPeriods(cfg, in.TermPeriods); err != nil {
		return err
	}
	if err := CheckRate(cfg, in.AnnualRatePercent); err != nil {
		return err
	}
	if _, err := ParseTiming(string(in.Timing)); err != nil {
		return err
	}
	return nil
}

// RawInput содержит параметры расчета в текстовом виде (поля формы, флаги CLI)
type RawInput struct {
	Payment           string
	TermPeriods       string
	AnnualRatePercent string
	Timing            string
}

// ParseInput разбирает и проверяет текстовые параметры расчета
func ParseInput(cfg *config.Config, raw RawInput) (calculations.ScheduleInput, error) {
	payment, err := strconv.ParseFloat(strings.TrimSpace(raw.Payment), 64)
	if err != nil {
		return calculations.ScheduleInput{}, &ValidationError{Field: "payment", Message: "please enter a valid monthly payment amount"}
	}
	term, err := strconv.Atoi(strings.TrimSpace(raw.TermPeriods))
	if err != nil {
		return calculations.ScheduleInput{}, &ValidationError{Field: "term_periods", Message: "please enter a valid lease term in months"}
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(raw.AnnualRatePercent), 64)
	if err != nil {
		return calculations.ScheduleInput{}, &ValidationError{Field: "annual_rate_percent", Message: "please enter a valid discount rate"}
	}
	timing, err := ParseTiming(raw.Timing)
	if err != nil {
		return calculations.ScheduleInput{}, err
	}

	in := calculations.ScheduleInput{
		Payment:           payment,
		TermPeriods:       term,
		AnnualRatePercent: rate,
		Timing:            timing,
	}
	if err := CheckInput(cfg, in); err != nil {
		return calculations.ScheduleInput{}, err
	}
	return in, nil
}
