package calculations

// Фазы года в графике контракта
const (
	PhaseEarning  = "earning"
	PhaseDeferred = "deferred"
)

// ContractTerms описывает условия контракта с отложенной компенсацией
type ContractTerms struct {
	TotalValue        float64 `json:"total_value"`
	Years             int     `json:"years"`
	DeferralAmount    float64 `json:"deferral_amount"`
	DeferralStartYear int     `json:"deferral_start_year"`
	PayoutDuration    int     `json:"payout_duration"`
	InterestRate      float64 `json:"interest_rate"`
}

// TimelineYears возвращает длину полного графика: игровые годы плюс хвост выплат.
// С отложенной суммой это max(years, years+deferral_start_year+payout_duration).
// Без отложенной суммы хвоста нет и график равен years: формула max здесь
// намеренно не применяется, иначе контракт без отсрочки получил бы пустые
// строки выплат.
func (t ContractTerms) TimelineYears() int {
	if t.DeferralAmount <= 0 {
		return t.Years
	}
	tail := t.Years + t.DeferralStartYear + t.PayoutDuration
	if tail > t.Years {
		return tail
	}
	return t.Years
}

// PayoutWindow возвращает первый и последний год выплаты отложенных сумм (1-based)
func (t ContractTerms) PayoutWindow() (start, end int) {
	start = t.Years + t.DeferralStartYear
	end = start + t.PayoutDuration - 1
	return start, end
}

// YearlyRecord представляет один год графика
type YearlyRecord struct {
	Year               int     `json:"year"`
	Label              string  `json:"label"`
	Phase              string  `json:"phase"`
	CashSalary         float64 `json:"cash_salary"`
	DeferredEarned     float64 `json:"deferred_earned"`
	RecognizedValue    float64 `json:"recognized_value"`
	DeferredPayout     float64 `json:"deferred_payout"`
	Received           float64 `json:"received"`
	CumulativeReceived float64 `json:"cumulative_received"`
}

// ContractSummary представляет сводку по контракту
type ContractSummary struct {
	TotalValue               float64 `json:"total_value"`
	Years                    int     `json:"years"`
	DeferralAmount           float64 `json:"deferral_amount"`
	DeferralStartYear        int     `json:"deferral_start_year"`
	PayoutDuration           int     `json:"payout_duration"`
	InterestRate             float64 `json:"interest_rate"`
	NominalAAV               float64 `json:"nominal_aav"`
	TaxAAV                   float64 `json:"tax_aav"`
	TotalRecognizedPV        float64 `json:"total_recognized_pv"`
	EffectiveDiscountPercent float64 `json:"effective_discount_percent"`
	TotalCashSalary          float64 `json:"total_cash_salary"`
	TotalDeferredPaid        float64 `json:"total_deferred_paid"`
	TimelineYears            int     `json:"timeline_years"`
	PayoutStartYear          int     `json:"payout_start_year"`
	PayoutEndYear            int     `json:"payout_end_year"`
}

// CalculationResult представляет результат расчета графика контракта
type CalculationResult struct {
	Summary  ContractSummary `json:"summary"`
	Schedule []YearlyRecord  `json:"schedule"`
}

// RateComparison представляет результат расчета одного контракта при двух ставках
type RateComparison struct {
	RateA                 float64           `json:"rate_a"`
	RateB                 float64           `json:"rate_b"`
	TaxAAVDiff            float64           `json:"tax_aav_diff"`
	TotalRecognizedPVDiff float64           `json:"total_recognized_pv_diff"`
	EffectiveDiscountDiff float64           `json:"effective_discount_diff"`
	LowerTaxAAVRate       float64           `json:"lower_tax_aav_rate"`
	Recommendation        string            `json:"recommendation"`
	A                     CalculationResult `json:"a"`
	B                     CalculationResult `json:"b"`
}
