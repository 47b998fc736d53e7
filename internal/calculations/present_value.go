package calculations

import "math"

// PresentValue дисконтирует будущую сумму к текущему моменту.
// annualRatePercent задается в процентах (4.43 = 4.43%), yearsOfDelay может быть
// дробным и отрицательным. При ставке ≤ -100% результат не определен.
func PresentValue(futureAmount, yearsOfDelay, annualRatePercent float64) float64 {
	r := annualRatePercent / 100.0
	if r == 0.0 || yearsOfDelay == 0.0 {
		return futureAmount
	}
	return futureAmount / math.Pow(1.0+r, yearsOfDelay)
}

// DiscountFactor возвращает множитель 1 / (1 + r)^t
func DiscountFactor(yearsOfDelay, annualRatePercent float64) float64 {
	return PresentValue(1.0, yearsOfDelay, annualRatePercent)
}
