package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

type GSTInput struct {
	TaxYear           int
	GrossSales        decimal.Decimal
	TaxableSupplies   decimal.Decimal
	ExemptSupplies    decimal.Decimal
	ZeroRatedSupplies decimal.Decimal
	InputTax          decimal.Decimal
	IsExport          bool
	IsImport          bool
	ImportValue       decimal.Decimal
	DueDate           *time.Time
	FilingDate        *time.Time
}

// GSTCalculation reports a payable position in NetGSTLiability or a refund
// position in RefundDue. Both are non-negative and at most one is non-zero.
type GSTCalculation struct {
	TaxYear              int                 `json:"taxYear"`
	TotalSupplies        decimal.Decimal     `json:"totalSupplies"`
	TaxableSupplies      decimal.Decimal     `json:"taxableSupplies"`
	ExemptSupplies       decimal.Decimal     `json:"exemptSupplies"`
	ZeroRatedSupplies    decimal.Decimal     `json:"zeroRatedSupplies"`
	OutputGST            decimal.Decimal     `json:"outputGst"`
	ReverseChargeGST     decimal.Decimal     `json:"reverseChargeGst"`
	InputTax             decimal.Decimal     `json:"inputTax"`
	NetGSTLiability      decimal.Decimal     `json:"netGstLiability"`
	RefundDue            decimal.Decimal     `json:"refundDue"`
	IsExport             bool                `json:"isExport"`
	RegistrationRequired bool                `json:"registrationRequired"`
	Penalties            *PenaltyCalculation `json:"penalties,omitempty"`
}

func (c *Calculator) CalculateGST(in GSTInput) (GSTCalculation, error) {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross sales", in.GrossSales},
		{"taxable supplies", in.TaxableSupplies},
		{"exempt supplies", in.ExemptSupplies},
		{"zero-rated supplies", in.ZeroRatedSupplies},
		{"input tax", in.InputTax},
		{"import value", in.ImportValue},
	}

	for _, a := range amounts {
		if a.value.IsNegative() {
			return GSTCalculation{}, invalidInput("%s %s is negative", a.name, a.value)
		}
	}

	outputGST := in.TaxableSupplies.Mul(c.conf.GSTRate)

	reverseCharge := decimal.Zero
	if in.IsImport {
		reverseCharge = in.ImportValue.Mul(c.conf.GSTRate)
	}

	net := outputGST.Add(reverseCharge).Sub(in.InputTax)

	result := GSTCalculation{
		TaxYear:              in.TaxYear,
		TotalSupplies:        in.TaxableSupplies.Add(in.ExemptSupplies).Add(in.ZeroRatedSupplies),
		TaxableSupplies:      in.TaxableSupplies,
		ExemptSupplies:       in.ExemptSupplies,
		ZeroRatedSupplies:    in.ZeroRatedSupplies,
		OutputGST:            outputGST,
		ReverseChargeGST:     reverseCharge,
		InputTax:             in.InputTax,
		NetGSTLiability:      decimal.Zero,
		RefundDue:            decimal.Zero,
		IsExport:             in.IsExport,
		RegistrationRequired: in.GrossSales.GreaterThan(c.conf.GSTRegistrationThreshold),
	}

	if net.IsPositive() {
		result.NetGSTLiability = net
	} else {
		result.RefundDue = net.Neg()
	}

	penalties, err := c.penaltyFor(result.NetGSTLiability, GST, AssessTimeliness(in.DueDate, in.FilingDate))
	if err != nil {
		return GSTCalculation{}, err
	}
	result.Penalties = penalties

	return result, nil
}
