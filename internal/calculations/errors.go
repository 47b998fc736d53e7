package calculations

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/deferred-contract-go/pkg/utils"
)

// ErrInvalidTerms сигнализирует о недопустимых условиях контракта
var ErrInvalidTerms = errors.New("недопустимые условия контракта")

// InvalidTermsError описывает нарушенное ограничение конкретного поля
type InvalidTermsError struct {
	Field   string
	Message string
}

func (e *InvalidTermsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is позволяет сопоставлять ошибку с ErrInvalidTerms через errors.Is
func (e *InvalidTermsError) Is(target error) bool {
	return target == ErrInvalidTerms
}

// NewInvalidTermsError создает ошибку для поля с форматированным сообщением
func NewInvalidTermsError(field, format string, args ...interface{}) *InvalidTermsError {
	return &InvalidTermsError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate проверяет структурные ограничения условий.
// Без нее расчет деления на years и payout_duration дает Inf/NaN.
func (t ContractTerms) Validate() error {
	if !utils.IsFinite(t.TotalValue) {
		return NewInvalidTermsError("total_value", "значение не является конечным числом")
	}
	if !utils.IsFinite(t.DeferralAmount) {
		return NewInvalidTermsError("deferral_amount", "значение не является конечным числом")
	}
	if !utils.IsFinite(t.InterestRate) {
		return NewInvalidTermsError("interest_rate", "значение не является конечным числом")
	}
	if t.TotalValue < 0 {
		return NewInvalidTermsError("total_value", "значение должно быть ≥ 0")
	}
	if t.Years < 1 {
		return NewInvalidTermsError("years", "значение должно быть ≥ 1")
	}
	if t.DeferralAmount < 0 {
		return NewInvalidTermsError("deferral_amount", "значение должно быть ≥ 0")
	}
	if t.DeferralAmount > t.TotalValue {
		return NewInvalidTermsError("deferral_amount", "отложенная сумма не может превышать общую стоимость контракта")
	}
	if t.DeferralStartYear < 0 {
		return NewInvalidTermsError("deferral_start_year", "значение должно быть ≥ 0")
	}
	if t.PayoutDuration < 1 {
		return NewInvalidTermsError("payout_duration", "значение должно быть ≥ 1")
	}
	if t.InterestRate <= -100 {
		return NewInvalidTermsError("interest_rate", "ставка должна быть > -100%%")
	}
	return nil
}
