package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет денежную сумму до копеек (half away from zero)
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// SumExact суммирует значения в десятичной арифметике без накопления ошибки float
func SumExact(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// SplitCents делит сумму на count равных долей в копейках.
// Последняя доля забирает остаток округления, так что
// regular*(count-1) + last == Round2(total)
func SplitCents(total float64, count int) (regular, last float64) {
	if count < 1 || !IsFinite(total) {
		return 0, 0
	}
	t := decimal.NewFromFloat(total).Round(2)
	reg := t.Div(decimal.NewFromInt(int64(count))).Round(2)
	lst := t.Sub(reg.Mul(decimal.NewFromInt(int64(count - 1))))
	return reg.InexactFloat64(), lst.InexactFloat64()
}
