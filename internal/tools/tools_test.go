package tools

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cloud-ru/deferred-contract-go/internal/calculations"
	"github.com/cloud-ru/deferred-contract-go/internal/config"
	"go.opentelemetry.io/otel/trace/noop"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxTotalValue:     1e10,
		MaxYears:          40,
		MaxDeferralStart:  40,
		MaxPayoutDuration: 40,
		MaxRate:           100,
	}
}

func contractParams() map[string]interface{} {
	return map[string]interface{}{
		"total_value":         700000000.0,
		"years":               10.0,
		"deferral_amount":     680000000.0,
		"deferral_start_year": 1.0,
		"payout_duration":     10.0,
		"interest_rate":       4.43,
	}
}

func TestContractScheduleHandler(t *testing.T) {
	handler := ContractScheduleHandler(testConfig(), noop.NewTracerProvider().Tracer("test"))

	tests := []struct {
		name         string
		mutate       func(map[string]interface{})
		wantParamErr bool
		wantField    string
	}{
		{name: "valid contract", mutate: func(map[string]interface{}) {}},
		{name: "missing years", mutate: func(p map[string]interface{}) { delete(p, "years") }, wantParamErr: true},
		{name: "fractional years", mutate: func(p map[string]interface{}) { p["years"] = 10.5 }, wantParamErr: true},
		{name: "string rate", mutate: func(p map[string]interface{}) { p["interest_rate"] = "4.43" }, wantParamErr: true},
		{name: "deferral above total", mutate: func(p map[string]interface{}) { p["deferral_amount"] = 800000000.0 }, wantField: "deferral_amount"},
		{name: "zero payout duration", mutate: func(p map[string]interface{}) { p["payout_duration"] = 0.0 }, wantField: "payout_duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := contractParams()
			tt.mutate(params)

			got, err := handler(context.Background(), params)
			switch {
			case tt.wantParamErr:
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
			case tt.wantField != "":
				var termsErr *calculations.InvalidTermsError
				if !errors.As(err, &termsErr) {
					t.Fatalf("expected *InvalidTermsError, got %v", err)
				}
				if termsErr.Field != tt.wantField {
					t.Errorf("field = %s, want %s", termsErr.Field, tt.wantField)
				}
			default:
				if err != nil {
					t.Fatalf("handler() error = %v", err)
				}
				result, ok := got.(*calculations.CalculationResult)
				if !ok {
					t.Fatalf("unexpected result type %T", got)
				}
				if len(result.Schedule) != 21 {
					t.Errorf("expected 21 years, got %d", len(result.Schedule))
				}
				if result.Summary.TaxAAV >= result.Summary.NominalAAV {
					t.Error("tax AAV should be below nominal AAV")
				}
			}
		})
	}
}

func TestPresentValueHandler(t *testing.T) {
	handler := PresentValueHandler(testConfig(), noop.NewTracerProvider().Tracer("test"))

	got, err := handler(context.Background(), map[string]interface{}{
		"future_amount":       121.0,
		"years_of_delay":      2.0,
		"annual_rate_percent": 10.0,
	})
	if err != nil {
		t.Fatalf("handler() error = %v", err)
	}
	result := got.(*PresentValueResult)
	if result.PresentValue != 100 {
		t.Errorf("expected present value 100, got %f", result.PresentValue)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"future_amount":       121.0,
		"years_of_delay":      2.0,
		"annual_rate_percent": -5.0,
	})
	var termsErr *calculations.InvalidTermsError
	if !errors.As(err, &termsErr) || termsErr.Field != "annual_rate_percent" {
		t.Errorf("expected annual_rate_percent validation error, got %v", err)
	}

	_, err = handler(context.Background(), map[string]interface{}{"future_amount": 1.0})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCompareRatesHandler(t *testing.T) {
	handler := CompareRatesHandler(testConfig(), noop.NewTracerProvider().Tracer("test"))

	params := contractParams()
	delete(params, "interest_rate")
	params["rate_a"] = 2.5
	params["rate_b"] = 4.43

	got, err := handler(context.Background(), params)
	if err != nil {
		t.Fatalf("handler() error = %v", err)
	}
	result := got.(*calculations.RateComparison)
	if result.B.Summary.TaxAAV >= result.A.Summary.TaxAAV {
		t.Errorf("4.43%% tax AAV %f should be below 2.5%% tax AAV %f",
			result.B.Summary.TaxAAV, result.A.Summary.TaxAAV)
	}

	params["rate_b"] = 500.0
	_, err = handler(context.Background(), params)
	var termsErr *calculations.InvalidTermsError
	if !errors.As(err, &termsErr) || termsErr.Field != "rate_b" {
		t.Errorf("expected rate_b validation error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	registry := Registry(testConfig(), noop.NewTracerProvider().Tracer("test"))
	want := []string{ToolCompareRates, ToolContractSchedule, ToolPresentValue}
	if got := Names(registry); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
