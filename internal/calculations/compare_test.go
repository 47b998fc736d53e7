package calculations

import (
	"strings"
	"testing"
)

func TestCompareRates(t *testing.T) {
	result, err := CompareRates(fullDeferralTerms(0), 2.5, 4.43)
	if err != nil {
		t.Fatalf("CompareRates() error = %v", err)
	}

	if result.B.Summary.TaxAAV >= result.A.Summary.TaxAAV {
		t.Errorf("4.43%% tax AAV %f should be below 2.5%% tax AAV %f",
			result.B.Summary.TaxAAV, result.A.Summary.TaxAAV)
	}
	if result.TaxAAVDiff <= 0 {
		t.Errorf("expected positive tax AAV difference, got %f", result.TaxAAVDiff)
	}
	if result.LowerTaxAAVRate != 4.43 {
		t.Errorf("expected lower tax AAV rate 4.43, got %f", result.LowerTaxAAVRate)
	}
	if result.EffectiveDiscountDiff >= 0 {
		t.Errorf("expected negative effective discount difference, got %f", result.EffectiveDiscountDiff)
	}
	if result.A.Summary.InterestRate != 2.5 || result.B.Summary.InterestRate != 4.43 {
		t.Errorf("rates not applied: %f, %f", result.A.Summary.InterestRate, result.B.Summary.InterestRate)
	}
	if result.A.Summary.NominalAAV != result.B.Summary.NominalAAV {
		t.Error("nominal AAV should not depend on the rate")
	}
}

func TestCompareRatesWithoutDeferral(t *testing.T) {
	terms := ContractTerms{TotalValue: 100000000, Years: 5, DeferralStartYear: 1, PayoutDuration: 5}
	result, err := CompareRates(terms, 2, 9)
	if err != nil {
		t.Fatalf("CompareRates() error = %v", err)
	}
	if result.TaxAAVDiff != 0 {
		t.Errorf("expected no tax AAV difference, got %f", result.TaxAAVDiff)
	}
	if result.Recommendation == "" {
		t.Error("expected recommendation")
	}
}

func TestCompareRatesInvalidRate(t *testing.T) {
	if _, err := CompareRates(fullDeferralTerms(0), 2.5, -100); err == nil {
		t.Error("expected error for rate of -100%")
	}
}

func TestCompareRatesNearlyEqualRates(t *testing.T) {
	result, err := CompareRates(fullDeferralTerms(0), 4.43, 4.4300000001)
	if err != nil {
		t.Fatalf("CompareRates() error = %v", err)
	}
	if result.TaxAAVDiff != 0 {
		t.Errorf("expected rounded tax AAV difference 0, got %f", result.TaxAAVDiff)
	}
	if result.LowerTaxAAVRate != 4.4300000001 {
		t.Errorf("expected lower tax AAV rate 4.4300000001, got %v", result.LowerTaxAAVRate)
	}
	if !strings.HasPrefix(result.Recommendation, "При ставке 4.43%") {
		t.Errorf("recommendation should name the higher rate: %q", result.Recommendation)
	}
}

func TestCompareRatesRecommendation(t *testing.T) {
	tests := []struct {
		name      string
		terms     ContractTerms
		rateA     float64
		rateB     float64
		wantLower float64
		wantText  string
	}{
		{
			name:      "higher first rate",
			terms:     fullDeferralTerms(0),
			rateA:     6,
			rateB:     3,
			wantLower: 6,
			wantText:  "При ставке 6.00%",
		},
		{
			name:      "same rates",
			terms:     fullDeferralTerms(0),
			rateA:     4.43,
			rateB:     4.43,
			wantLower: 4.43,
			wantText:  "Ставки совпадают",
		},
		{
			name:      "no deferral",
			terms:     ContractTerms{TotalValue: 100000000, Years: 5, DeferralStartYear: 1, PayoutDuration: 5},
			rateA:     2,
			rateB:     9,
			wantLower: 2,
			wantText:  "Отложенных выплат нет",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareRates(tt.terms, tt.rateA, tt.rateB)
			if err != nil {
				t.Fatalf("CompareRates() error = %v", err)
			}
			if result.LowerTaxAAVRate != tt.wantLower {
				t.Errorf("expected lower tax AAV rate %v, got %v", tt.wantLower, result.LowerTaxAAVRate)
			}
			if !strings.HasPrefix(result.Recommendation, tt.wantText) {
				t.Errorf("recommendation %q does not start with %q", result.Recommendation, tt.wantText)
			}
		})
	}
}
