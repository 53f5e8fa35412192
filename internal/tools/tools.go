package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/internal/metrics"
	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
	"github.com/noel97chan-creator/IFRS16calculator/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	LeaseScheduleTool       = "lease_schedule"
	CompareLeaseTimingsTool = "compare_lease_timings"
)

// ToolHandler представляет обработчик инструмента расчета
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry возвращает все инструменты по имени
func Registry(cfg *config.Config, tracer trace.Tracer) map[string]ToolHandler {
	return map[string]ToolHandler{
		LeaseScheduleTool:       LeaseScheduleHandler(cfg, tracer),
		CompareLeaseTimingsTool: CompareLeaseTimingsHandler(cfg, tracer),
	}
}

// LeaseScheduleHandler обрабатывает запрос на расчет графика аренды
func LeaseScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := LeaseScheduleTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("http", toolName, "started").Inc()

		input, err := scheduleInputFromParams(params, true)
		if err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}

		span.SetAttributes(
			attribute.Float64("payment", input.Payment),
			attribute.Int("term_periods", input.TermPeriods),
			attribute.Float64("annual_rate_percent", input.AnnualRatePercent),
			attribute.String("timing", string(input.Timing)),
		)

		if err := validators.CheckInput(cfg, input); err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}

		result := calculations.ComputeSchedule(input)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("present_value", utils.Round2(result.Summary.PresentValue)),
			attribute.Float64("periodic_amortization", utils.Round2(result.Summary.PeriodicAmortization)),
		)

		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("http", toolName, "success").Inc()

		return result, nil
	}
}

// CompareLeaseTimingsHandler обрабатывает запрос на сравнение платежей в конце и в начале периода
func CompareLeaseTimingsHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := CompareLeaseTimingsTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("http", toolName, "started").Inc()

		input, err := scheduleInputFromParams(params, false)
		if err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}

		span.SetAttributes(
			attribute.Float64("payment", input.Payment),
			attribute.Int("term_periods", input.TermPeriods),
			attribute.Float64("annual_rate_percent", input.AnnualRatePercent),
		)

		if err := validators.CheckPayment(cfg, input.Payment); err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}
		if err := validators.CheckTermPeriods(cfg, input.TermPeriods); err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}
		if err := validators.CheckRate(cfg, input.AnnualRatePercent); err != nil {
			failValidation(span, toolName)
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}

		result := calculations.CompareTimings(input.Payment, input.TermPeriods, input.AnnualRatePercent)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("present_value_difference", utils.Round2(result.PresentValueDifference)),
		)

		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("http", toolName, "success").Inc()

		return result, nil
	}
}

func failValidation(span trace.Span, toolName string) {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("http", toolName, "error").Inc()
}

// scheduleInputFromParams извлекает параметры из JSON-объекта (числа приходят как float64)
func scheduleInputFromParams(params map[string]interface{}, withTiming bool) (calculations.ScheduleInput, error) {
	payment, ok := params["payment"].(float64)
	if !ok {
		return calculations.ScheduleInput{}, &validators.ValidationError{Field: "payment", Message: "must be a number"}
	}
	annualRatePercent, ok := params["annual_rate_percent"].(float64)
	if !ok {
		return calculations.ScheduleInput{}, &validators.ValidationError{Field: "annual_rate_percent", Message: "must be a number"}
	}
	termFloat, ok := params["term_periods"].(float64)
	if !ok || termFloat != math.Trunc(termFloat) || math.Abs(termFloat) > math.MaxInt32 {
		return calculations.ScheduleInput{}, &validators.ValidationError{Field: "term_periods", Message: "must be a whole number"}
	}

	input := calculations.ScheduleInput{
		Payment:           payment,
		TermPeriods:       int(termFloat),
		AnnualRatePercent: annualRatePercent,
	}

	if withTiming {
		raw, ok := params["timing"].(string)
		if !ok {
			return calculations.ScheduleInput{}, &validators.ValidationError{Field: "timing", Message: "must be a string (end or start)"}
		}
		timing, err := validators.ParseTiming(raw)
		if err != nil {
			return calculations.ScheduleInput{}, err
		}
		input.Timing = timing
	}

	return input, nil
}
