package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/deferred-contract-go/pkg/utils"
)

// CompareRates рассчитывает один и тот же контракт при двух ставках дисконтирования
func CompareRates(terms ContractTerms, rateA, rateB float64) (*RateComparison, error) {
	termsA := terms
	termsA.InterestRate = rateA
	resultA, err := ContractSchedule(termsA)
	if err != nil {
		return nil, err
	}

	termsB := terms
	termsB.InterestRate = rateB
	resultB, err := ContractSchedule(termsB)
	if err != nil {
		return nil, err
	}

	sumA := resultA.Summary
	sumB := resultB.Summary

	taxAAVDiff := utils.Round2(sumA.TaxAAV - sumB.TaxAAV)

	// Выше ставка - сильнее дисконт отложенных выплат и ниже налоговый AAV.
	// Ветка выбирается по входным данным: разница округленных AAV может быть нулем
	// даже при разных ставках.
	var lowerRate float64
	var recommendation string
	switch {
	case rateA == rateB:
		lowerRate = rateA
		recommendation = "Ставки совпадают: налоговый AAV одинаков"
	case terms.DeferralAmount == 0:
		lowerRate = rateA
		recommendation = "Отложенных выплат нет: налоговый AAV не зависит от ставки"
	default:
		lowerRate = math.Max(rateA, rateB)
		if diff := math.Abs(taxAAVDiff); diff >= 0.01 {
			recommendation = fmt.Sprintf("При ставке %.2f%% налоговый AAV ниже на %.2f", lowerRate, diff)
		} else {
			recommendation = fmt.Sprintf("При ставке %.2f%% налоговый AAV ниже менее чем на копейку", lowerRate)
		}
	}

	return &RateComparison{
		RateA:                 rateA,
		RateB:                 rateB,
		TaxAAVDiff:            taxAAVDiff,
		TotalRecognizedPVDiff: utils.Round2(sumA.TotalRecognizedPV - sumB.TotalRecognizedPV),
		EffectiveDiscountDiff: utils.Round2(sumA.EffectiveDiscountPercent - sumB.EffectiveDiscountPercent),
		LowerTaxAAVRate:       lowerRate,
		Recommendation:        recommendation,
		A:                     *resultA,
		B:                     *resultB,
	}, nil
}
