package tax

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type WithholdingTaxInput struct {
	Amount          decimal.Decimal
	WithholdingType WithholdingType
	IsResident      bool
}

type WithholdingTaxCalculation struct {
	Amount               decimal.Decimal `json:"amount"`
	WithholdingType      WithholdingType `json:"withholdingTaxType"`
	IsResident           bool            `json:"isResident"`
	Rate                 decimal.Decimal `json:"rate"`
	WithholdingTaxAmount decimal.Decimal `json:"withholdingTaxAmount"`
	NetAmount            decimal.Decimal `json:"netAmount"`
}

// CalculateWithholdingTax uses the resident rate unless the payee is
// non-resident and a non-resident rate is configured for the payment type.
func (c *Calculator) CalculateWithholdingTax(in WithholdingTaxInput) (WithholdingTaxCalculation, error) {
	if in.Amount.IsNegative() {
		return WithholdingTaxCalculation{}, invalidInput("amount %s is negative", in.Amount)
	}

	r, ok := c.conf.WithholdingRates[in.WithholdingType]
	if !in.WithholdingType.Valid() || !ok {
		return WithholdingTaxCalculation{}, errors.Wrapf(ErrUnknownWithholdingType, "%q", in.WithholdingType)
	}

	if !in.IsResident {
		if nr, ok := c.conf.NonResidentWithholdingRates[in.WithholdingType]; ok {
			r = nr
		}
	}

	withheld := in.Amount.Mul(r)

	return WithholdingTaxCalculation{
		Amount:               in.Amount,
		WithholdingType:      in.WithholdingType,
		IsResident:           in.IsResident,
		Rate:                 r,
		WithholdingTaxAmount: withheld,
		NetAmount:            in.Amount.Sub(withheld),
	}, nil
}
