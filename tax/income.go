package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

type Allowance struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type IncomeTaxInput struct {
	TaxpayerCategory TaxpayerCategory
	TaxYear          int
	GrossIncome      decimal.Decimal
	Deductions       decimal.Decimal
	Allowances       []Allowance
	DueDate          *time.Time
	PaymentDate      *time.Time
}

type IncomeTaxCalculation struct {
	TaxpayerCategory TaxpayerCategory    `json:"taxpayerCategory"`
	TaxYear          int                 `json:"taxYear"`
	GrossIncome      decimal.Decimal     `json:"grossIncome"`
	Deductions       decimal.Decimal     `json:"deductions"`
	TotalAllowances  decimal.Decimal     `json:"totalAllowances"`
	TaxableIncome    decimal.Decimal     `json:"taxableIncome"`
	StandardTax      decimal.Decimal     `json:"standardTax"`
	MinimumTax       decimal.Decimal     `json:"minimumTax"`
	PayableTax       decimal.Decimal     `json:"payableTax"`
	EffectiveRate    decimal.Decimal     `json:"effectiveRate"`
	MarginalRate     decimal.Decimal     `json:"marginalRate"`
	Breakdown        []BracketStatement  `json:"breakdown,omitempty"`
	Penalties        *PenaltyCalculation `json:"penalties,omitempty"`
}

func (c *Calculator) CalculateIncomeTax(in IncomeTaxInput) (IncomeTaxCalculation, error) {
	if !in.TaxpayerCategory.Valid() {
		return IncomeTaxCalculation{}, invalidInput("unknown taxpayer category %q", in.TaxpayerCategory)
	}

	if in.GrossIncome.IsNegative() {
		return IncomeTaxCalculation{}, invalidInput("gross income %s is negative", in.GrossIncome)
	}

	if in.Deductions.IsNegative() {
		return IncomeTaxCalculation{}, invalidInput("deductions %s are negative", in.Deductions)
	}

	totalAllowances := decimal.Zero

	for _, a := range in.Allowances {
		if a.Amount.IsNegative() {
			return IncomeTaxCalculation{}, invalidInput("allowance %q amount %s is negative", a.Type, a.Amount)
		}
		totalAllowances = totalAllowances.Add(a.Amount)
	}

	taxable := decimal.Max(decimal.Zero, in.GrossIncome.Sub(in.Deductions).Sub(totalAllowances))

	result := IncomeTaxCalculation{
		TaxpayerCategory: in.TaxpayerCategory,
		TaxYear:          in.TaxYear,
		GrossIncome:      in.GrossIncome,
		Deductions:       in.Deductions,
		TotalAllowances:  totalAllowances,
		TaxableIncome:    taxable,
		MinimumTax:       decimal.Zero,
	}

	if in.TaxpayerCategory == Individual {
		bt, err := ComputeBracketTax(taxable, c.conf.IndividualBrackets)
		if err != nil {
			return IncomeTaxCalculation{}, err
		}

		result.StandardTax = bt.Tax
		result.PayableTax = bt.Tax
		result.MarginalRate = bt.MarginalRate
		result.Breakdown = bt.Breakdown
	} else {
		minimumRate, ok := c.conf.MinimumTaxRates[in.TaxpayerCategory]
		if !ok {
			minimumRate = decimal.Zero
		}

		result.StandardTax = taxable.Mul(c.conf.CorporateRate)
		result.MinimumTax = in.GrossIncome.Mul(minimumRate)
		result.PayableTax = decimal.Max(result.StandardTax, result.MinimumTax)
		result.MarginalRate = c.conf.CorporateRate
	}

	result.EffectiveRate = ratio(result.PayableTax, in.GrossIncome)

	penalties, err := c.penaltyFor(result.PayableTax, IncomeTax, AssessTimeliness(in.DueDate, in.PaymentDate))
	if err != nil {
		return IncomeTaxCalculation{}, err
	}
	result.Penalties = penalties

	return result, nil
}

// ratio is part/whole rounded to four places, or zero when whole is zero.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Round(4)
}
