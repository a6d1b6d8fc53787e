package tax

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	PenaltyLateFiling  = "LateFiling"
	PenaltyLatePayment = "LatePaymentInterest"
)

var daysPerYear = decimal.NewFromInt(365)

type PenaltyItem struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Calculation string          `json:"calculation"`
}

type PenaltyCalculation struct {
	TaxType             TaxType         `json:"taxType"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	DaysLate            int             `json:"daysLate"`
	LateFilingPenalty   decimal.Decimal `json:"lateFilingPenalty"`
	LatePaymentInterest decimal.Decimal `json:"latePaymentInterest"`
	TotalPenalty        decimal.Decimal `json:"totalPenalty"`
	PenaltyBreakdown    []PenaltyItem   `json:"penaltyBreakdown"`
}

// CalculatePenalty charges the late filing penalty and late payment interest
// for a return settled on actual against due. Settling early is not an
// error, it simply yields no penalty.
func (c *Calculator) CalculatePenalty(taxAmount decimal.Decimal, taxType TaxType, due, actual time.Time) (PenaltyCalculation, error) {
	return c.penalty(taxAmount, taxType, AssessTimeliness(&due, &actual))
}

func (c *Calculator) penalty(taxAmount decimal.Decimal, taxType TaxType, timing Timeliness) (PenaltyCalculation, error) {
	if taxAmount.IsNegative() {
		return PenaltyCalculation{}, invalidInput("tax amount %s is negative", taxAmount)
	}

	rates, err := c.penaltyRates(taxType)
	if err != nil {
		return PenaltyCalculation{}, err
	}

	result := PenaltyCalculation{
		TaxType:             taxType,
		TaxAmount:           taxAmount,
		LateFilingPenalty:   decimal.Zero,
		LatePaymentInterest: decimal.Zero,
		TotalPenalty:        decimal.Zero,
		PenaltyBreakdown:    []PenaltyItem{},
	}

	late, ok := timing.(Late)
	if !ok {
		return result, nil
	}

	days := decimal.NewFromInt(int64(late.Days))

	result.DaysLate = late.Days
	result.LateFilingPenalty = taxAmount.Mul(rates.LateFilingRate)
	result.LatePaymentInterest = taxAmount.Mul(rates.DailyInterestRate).Mul(days).Div(daysPerYear).Round(2)
	result.TotalPenalty = result.LateFilingPenalty.Add(result.LatePaymentInterest)
	result.PenaltyBreakdown = []PenaltyItem{
		{
			Type:        PenaltyLateFiling,
			Description: fmt.Sprintf("Late filing penalty for %s", taxType),
			Amount:      result.LateFilingPenalty,
			Calculation: fmt.Sprintf("%s x %s%%", taxAmount, percent(rates.LateFilingRate)),
		},
		{
			Type:        PenaltyLatePayment,
			Description: fmt.Sprintf("Interest on %s paid %d days late", taxType, late.Days),
			Amount:      result.LatePaymentInterest,
			Calculation: fmt.Sprintf("%s x %s%% x %d / 365", taxAmount, percent(rates.DailyInterestRate), late.Days),
		},
	}

	return result, nil
}

func (c *Calculator) penaltyRates(taxType TaxType) (PenaltyRates, error) {
	if !taxType.Valid() {
		return PenaltyRates{}, invalidInput("unknown tax type %q", taxType)
	}

	rates, ok := c.conf.PenaltyRates[taxType]
	if !ok {
		return PenaltyRates{}, errors.Errorf("no penalty rates configured for %s", taxType)
	}

	return rates, nil
}

func percent(r decimal.Decimal) string {
	return r.Mul(decimal.NewFromInt(100)).String()
}

// penaltyFor returns nil when the return was on time.
func (c *Calculator) penaltyFor(taxAmount decimal.Decimal, taxType TaxType, timing Timeliness) (*PenaltyCalculation, error) {
	if _, late := timing.(Late); !late {
		return nil, nil
	}

	p, err := c.penalty(decimal.Max(taxAmount, decimal.Zero), taxType, timing)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
