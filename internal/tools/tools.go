package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cloud-ru/deferred-contract-go/internal/calculations"
	"github.com/cloud-ru/deferred-contract-go/internal/config"
	"github.com/cloud-ru/deferred-contract-go/internal/metrics"
	"github.com/cloud-ru/deferred-contract-go/internal/validators"
	"github.com/cloud-ru/deferred-contract-go/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Имена инструментов
const (
	ToolContractSchedule = "deferred_contract_schedule"
	ToolPresentValue     = "present_value"
	ToolCompareRates     = "compare_discount_rates"
)

// ErrInvalidParameter параметр отсутствует или имеет неверный тип
var ErrInvalidParameter = errors.New("invalid parameter")

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// PresentValueResult представляет результат дисконтирования одной суммы
type PresentValueResult struct {
	FutureAmount      float64 `json:"future_amount"`
	YearsOfDelay      float64 `json:"years_of_delay"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	DiscountFactor    float64 `json:"discount_factor"`
	PresentValue      float64 `json:"present_value"`
}

// Registry возвращает все инструменты по именам
func Registry(cfg *config.Config, tracer trace.Tracer) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolContractSchedule: ContractScheduleHandler(cfg, tracer),
		ToolPresentValue:     PresentValueHandler(cfg, tracer),
		ToolCompareRates:     CompareRatesHandler(cfg, tracer),
	}
}

// Names возвращает отсортированные имена инструментов реестра
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContractScheduleHandler обрабатывает запрос на расчет графика контракта
func ContractScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolContractSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := termsFromParams(params, true)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(termsAttributes(terms)...)
		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := validators.CheckTerms(cfg, terms); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		start := time.Now()
		result, err := calculations.ContractSchedule(terms)
		metrics.CalculationDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("nominal_aav", result.Summary.NominalAAV),
			attribute.Float64("tax_aav", result.Summary.TaxAAV),
			attribute.Int("timeline_years", result.Summary.TimelineYears),
		)
		succeed(toolName)

		return result, nil
	}
}

// PresentValueHandler обрабатывает запрос на дисконтирование суммы
func PresentValueHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolPresentValue

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		futureAmount, err := floatParam(params, "future_amount")
		if err != nil {
			return nil, err
		}
		yearsOfDelay, err := floatParam(params, "years_of_delay")
		if err != nil {
			return nil, err
		}
		rate, err := floatParam(params, "annual_rate_percent")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Float64("future_amount", futureAmount),
			attribute.Float64("years_of_delay", yearsOfDelay),
			attribute.Float64("annual_rate_percent", rate),
		)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		maxDelay := float64(cfg.MaxYears + cfg.MaxDeferralStart + cfg.MaxPayoutDuration)
		if err := validators.ValidateNumber("future_amount", futureAmount, -cfg.MaxTotalValue, cfg.MaxTotalValue); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.ValidateNumber("years_of_delay", yearsOfDelay, -maxDelay, maxDelay); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.ValidateNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		pv := calculations.PresentValue(futureAmount, yearsOfDelay, rate)
		if !utils.IsFinite(pv) {
			return nil, failCalculation(span, toolName, fmt.Errorf("результат не является конечным числом"))
		}

		span.SetAttributes(attribute.Bool("success", true), attribute.Float64("present_value", pv))
		succeed(toolName)

		return &PresentValueResult{
			FutureAmount:      futureAmount,
			YearsOfDelay:      yearsOfDelay,
			AnnualRatePercent: rate,
			DiscountFactor:    calculations.DiscountFactor(yearsOfDelay, rate),
			PresentValue:      utils.Round2(pv),
		}, nil
	}
}

// CompareRatesHandler обрабатывает запрос на сравнение двух ставок дисконтирования
func CompareRatesHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareRates

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := termsFromParams(params, false)
		if err != nil {
			return nil, err
		}
		rateA, err := floatParam(params, "rate_a")
		if err != nil {
			return nil, err
		}
		rateB, err := floatParam(params, "rate_b")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(termsAttributes(terms)...)
		span.SetAttributes(
			attribute.Float64("rate_a", rateA),
			attribute.Float64("rate_b", rateB),
		)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := validators.ValidateNumber("rate_a", rateA, 0.0, cfg.MaxRate); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.ValidateNumber("rate_b", rateB, 0.0, cfg.MaxRate); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		terms.InterestRate = rateA
		if err := validators.CheckTerms(cfg, terms); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		start := time.Now()
		result, err := calculations.CompareRates(terms, rateA, rateB)
		metrics.CalculationDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("tax_aav_diff", result.TaxAAVDiff),
		)
		succeed(toolName)

		return result, nil
	}
}

func termsFromParams(params map[string]interface{}, withRate bool) (calculations.ContractTerms, error) {
	var terms calculations.ContractTerms
	var err error

	if terms.TotalValue, err = floatParam(params, "total_value"); err != nil {
		return terms, err
	}
	if terms.Years, err = intParam(params, "years"); err != nil {
		return terms, err
	}
	if terms.DeferralAmount, err = floatParam(params, "deferral_amount"); err != nil {
		return terms, err
	}
	if terms.DeferralStartYear, err = intParam(params, "deferral_start_year"); err != nil {
		return terms, err
	}
	if terms.PayoutDuration, err = intParam(params, "payout_duration"); err != nil {
		return terms, err
	}
	if withRate {
		if terms.InterestRate, err = floatParam(params, "interest_rate"); err != nil {
			return terms, err
		}
	}
	return terms, nil
}

func floatParam(params map[string]interface{}, name string) (float64, error) {
	switch v := params[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidParameter, name)
	}
}

func intParam(params map[string]interface{}, name string) (int, error) {
	v, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidParameter, name)
	}
	return int(v), nil
}

func termsAttributes(terms calculations.ContractTerms) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64("total_value", terms.TotalValue),
		attribute.Int("years", terms.Years),
		attribute.Float64("deferral_amount", terms.DeferralAmount),
		attribute.Int("deferral_start_year", terms.DeferralStartYear),
		attribute.Int("payout_duration", terms.PayoutDuration),
		attribute.Float64("interest_rate", terms.InterestRate),
	}
}

func failValidation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

func failCalculation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func succeed(toolName string) {
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}
