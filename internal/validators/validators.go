package validators

import (
	"github.com/cloud-ru/deferred-contract-go/internal/calculations"
	"github.com/cloud-ru/deferred-contract-go/internal/config"
	"github.com/cloud-ru/deferred-contract-go/pkg/utils"
)

// ValidateNumber проверяет, что число конечно и лежит в допустимом диапазоне
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return calculations.NewInvalidTermsError(name, "значение не является конечным числом")
	}
	if value < minInclusive {
		return calculations.NewInvalidTermsError(name, "значение должно быть ≥ %g", minInclusive)
	}
	if value > maxInclusive {
		return calculations.NewInvalidTermsError(name, "значение слишком велико (>%g)", maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return calculations.NewInvalidTermsError(name, "значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive)
	}
	return nil
}

// CheckTotalValue проверяет общую стоимость контракта
func CheckTotalValue(cfg *config.Config, value float64) error {
	return ValidateNumber("total_value", value, 0.0, cfg.MaxTotalValue)
}

// CheckDeferralAmount проверяет отложенную сумму относительно общей стоимости
func CheckDeferralAmount(deferral, total float64) error {
	if err := ValidateNumber("deferral_amount", deferral, 0.0, total); err != nil {
		if deferral > total {
			return calculations.NewInvalidTermsError("deferral_amount", "отложенная сумма не может превышать общую стоимость контракта")
		}
		return err
	}
	return nil
}

// CheckYears проверяет длительность игрового периода
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 1, cfg.MaxYears)
}

// CheckDeferralStartYear проверяет отсрочку начала выплат
func CheckDeferralStartYear(cfg *config.Config, start int) error {
	return ValidateIntRange("deferral_start_year", start, 0, cfg.MaxDeferralStart)
}

// CheckPayoutDuration проверяет срок выплаты отложенных сумм
func CheckPayoutDuration(cfg *config.Config, duration int) error {
	return ValidateIntRange("payout_duration", duration, 1, cfg.MaxPayoutDuration)
}

// CheckRate проверяет ставку дисконтирования
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumber("interest_rate", rate, 0.0, cfg.MaxRate)
}

// CheckTerms проверяет все поля условий и возвращает первое нарушение
func CheckTerms(cfg *config.Config, terms calculations.ContractTerms) error {
	checks := []func() error{
		func() error { return CheckTotalValue(cfg, terms.TotalValue) },
		func() error { return CheckYears(cfg, terms.Years) },
		func() error { return CheckDeferralAmount(terms.DeferralAmount, terms.TotalValue) },
		func() error { return CheckDeferralStartYear(cfg, terms.DeferralStartYear) },
		func() error { return CheckPayoutDuration(cfg, terms.PayoutDuration) },
		func() error { return CheckRate(cfg, terms.InterestRate) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return terms.Validate()
}
