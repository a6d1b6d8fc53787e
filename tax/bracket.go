package tax

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Bracket is one band of a progressive rate table. An invalid Upper means
// the band has no ceiling.
type Bracket struct {
	Lower decimal.Decimal
	Upper decimal.NullDecimal
	Rate  decimal.Decimal
}

// Contains reports whether amount falls in (Lower, Upper]. An amount that
// sits exactly on a boundary belongs to the lower band.
func (b Bracket) Contains(amount decimal.Decimal) bool {
	if !amount.GreaterThan(b.Lower) {
		return false
	}
	return !b.Upper.Valid || amount.LessThanOrEqual(b.Upper.Decimal)
}

// BracketTable is sorted ascending, contiguous, starts at zero and ends
// with a single unbounded band.
type BracketTable []Bracket

func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return errors.Wrap(ErrInvalidBracketTable, "no brackets")
	}

	if !t[0].Lower.IsZero() {
		return errors.Wrapf(ErrInvalidBracketTable, "first bracket starts at %s", t[0].Lower)
	}

	one := decimal.NewFromInt(1)

	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return errors.Wrapf(ErrInvalidBracketTable, "bracket %d rate %s out of range", i, b.Rate)
		}

		last := i == len(t)-1

		if !b.Upper.Valid {
			if !last {
				return errors.Wrapf(ErrInvalidBracketTable, "bracket %d is unbounded but not last", i)
			}
			continue
		}

		if last {
			return errors.Wrap(ErrInvalidBracketTable, "last bracket must be unbounded")
		}

		if !b.Upper.Decimal.GreaterThan(b.Lower) {
			return errors.Wrapf(ErrInvalidBracketTable, "bracket %d upper bound %s not above lower bound %s", i, b.Upper.Decimal, b.Lower)
		}

		if !t[i+1].Lower.Equal(b.Upper.Decimal) {
			return errors.Wrapf(ErrInvalidBracketTable, "gap or overlap between bracket %d and %d", i, i+1)
		}
	}

	return nil
}

// BracketStatement is the tax charged within a single band.
type BracketStatement struct {
	From          decimal.Decimal     `json:"from"`
	To            decimal.NullDecimal `json:"to"`
	TaxableAmount decimal.Decimal     `json:"taxableAmount"`
	Rate          decimal.Decimal     `json:"rate"`
	TaxAtBracket  decimal.Decimal     `json:"taxAtBracket"`
}

type BracketTax struct {
	Tax          decimal.Decimal    `json:"tax"`
	MarginalRate decimal.Decimal    `json:"marginalRate"`
	Breakdown    []BracketStatement `json:"breakdown"`
}

// ComputeBracketTax applies the marginal rates of table to taxable. The
// breakdown lists every band, with zeroes for bands the amount never reaches.
func ComputeBracketTax(taxable decimal.Decimal, table BracketTable) (BracketTax, error) {
	if err := table.Validate(); err != nil {
		return BracketTax{}, err
	}

	if taxable.IsNegative() {
		return BracketTax{}, invalidInput("taxable amount %s is negative", taxable)
	}

	result := BracketTax{
		Tax:          decimal.Zero,
		MarginalRate: decimal.Zero,
		Breakdown:    make([]BracketStatement, 0, len(table)),
	}

	for _, b := range table {
		statement := BracketStatement{
			From:          b.Lower,
			To:            b.Upper,
			TaxableAmount: decimal.Zero,
			Rate:          b.Rate,
			TaxAtBracket:  decimal.Zero,
		}

		if taxable.GreaterThan(b.Lower) {
			top := taxable
			if b.Upper.Valid {
				top = decimal.Min(taxable, b.Upper.Decimal)
			}

			statement.TaxableAmount = top.Sub(b.Lower)
			statement.TaxAtBracket = statement.TaxableAmount.Mul(b.Rate)
			result.Tax = result.Tax.Add(statement.TaxAtBracket)
		}

		if b.Contains(taxable) {
			result.MarginalRate = b.Rate
		}

		result.Breakdown = append(result.Breakdown, statement)
	}

	return result, nil
}
