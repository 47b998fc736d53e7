package calculations

import (
	"fmt"

	"github.com/cloud-ru/deferred-contract-go/pkg/utils"
)

// ContractSchedule рассчитывает график контракта с отложенной компенсацией:
// номинальный и налоговый AAV и разбивку по годам.
//
// Отложенная часть, заработанная в году e, делится поровну на payout_duration
// выплат. Каждая выплата дисконтируется к году e на срок (год выплаты - e).
// Признанная стоимость года e = денежная зарплата + сумма PV этих выплат.
//
// Денежные колонки графика считаются в копейках: последний год каждой колонки
// забирает остаток округления, поэтому зарплаты плюс выплаты дают TotalValue.
func ContractSchedule(terms ContractTerms) (*CalculationResult, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	n := terms.Years
	yearlyDeferredEarned := terms.DeferralAmount / float64(n)

	totalCashSalary := utils.SumExact(terms.TotalValue, -terms.DeferralAmount)
	cashSalary, lastCashSalary := utils.SplitCents(totalCashSalary, n)
	deferredEarned, lastDeferredEarned := utils.SplitCents(terms.DeferralAmount, n)
	payout, lastPayout := utils.SplitCents(terms.DeferralAmount, terms.PayoutDuration)

	payoutStart, payoutEnd := terms.PayoutWindow()
	installment := yearlyDeferredEarned / float64(terms.PayoutDuration)

	cashByYear := make([]float64, n)
	recognized := make([]float64, n)
	totalRecognizedPV := 0.0

	for e := 1; e <= n; e++ {
		cashByYear[e-1] = cashSalary
		if e == n {
			cashByYear[e-1] = lastCashSalary
		}

		discounted := 0.0
		for p := 0; p < terms.PayoutDuration; p++ {
			payoutYear := payoutStart + p
			delay := float64(payoutYear - e)
			discounted += PresentValue(installment, delay, terms.InterestRate)
		}
		recognized[e-1] = cashByYear[e-1] + discounted
		totalRecognizedPV += recognized[e-1]
	}

	nominalAAV := terms.TotalValue / float64(n)
	taxAAV := totalRecognizedPV / float64(n)

	var effectiveDiscount float64
	if nominalAAV != 0 {
		effectiveDiscount = (nominalAAV - taxAAV) / nominalAAV * 100
	}

	timeline := terms.TimelineYears()

	schedule := make([]YearlyRecord, 0, timeline)
	cumReceived := 0.0
	totalCash := 0.0
	totalDeferredPaid := 0.0

	for i := 1; i <= timeline; i++ {
		entry := YearlyRecord{Year: i}

		if i <= n {
			entry.Label = fmt.Sprintf("Year %d", i)
			entry.Phase = PhaseEarning
			entry.CashSalary = cashByYear[i-1]
			entry.DeferredEarned = deferredEarned
			if i == n {
				entry.DeferredEarned = lastDeferredEarned
			}
			entry.RecognizedValue = utils.Round2(recognized[i-1])
		} else {
			entry.Label = fmt.Sprintf("Deferred %d", i-n)
			entry.Phase = PhaseDeferred
		}

		if i >= payoutStart && i <= payoutEnd {
			entry.DeferredPayout = payout
			if i == payoutEnd {
				entry.DeferredPayout = lastPayout
			}
		}

		entry.Received = utils.SumExact(entry.CashSalary, entry.DeferredPayout)
		cumReceived = utils.SumExact(cumReceived, entry.Received)
		totalCash = utils.SumExact(totalCash, entry.CashSalary)
		totalDeferredPaid = utils.SumExact(totalDeferredPaid, entry.DeferredPayout)
		entry.CumulativeReceived = cumReceived

		schedule = append(schedule, entry)
	}

	summary := ContractSummary{
		TotalValue:               utils.Round2(terms.TotalValue),
		Years:                    n,
		DeferralAmount:           utils.Round2(terms.DeferralAmount),
		DeferralStartYear:        terms.DeferralStartYear,
		PayoutDuration:           terms.PayoutDuration,
		InterestRate:             terms.InterestRate,
		NominalAAV:               utils.Round2(nominalAAV),
		TaxAAV:                   utils.Round2(taxAAV),
		TotalRecognizedPV:        utils.Round2(totalRecognizedPV),
		EffectiveDiscountPercent: utils.Round2(effectiveDiscount),
		TotalCashSalary:          totalCash,
		TotalDeferredPaid:        totalDeferredPaid,
		TimelineYears:            timeline,
		PayoutStartYear:          payoutStart,
		PayoutEndYear:            payoutEnd,
	}

	return &CalculationResult{
		Summary:  summary,
		Schedule: schedule,
	}, nil
}
