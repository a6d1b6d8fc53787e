package tax

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateIncomeTax(t *testing.T) {
	type TC struct {
		name           string
		input          IncomeTaxInput
		wantTaxable    string
		wantStandard   string
		wantMinimum    string
		wantPayable    string
		wantEffective  string
		wantAllowances string
	}

	tcs := []TC{
		{
			name: "individual across three bands",
			input: IncomeTaxInput{
				TaxpayerCategory: Individual,
				TaxYear:          2024,
				GrossIncome:      d("25000000"),
			},
			wantTaxable:    "25000000",
			wantStandard:   "3100000",
			wantMinimum:    "0",
			wantPayable:    "3100000",
			wantEffective:  "0.124",
			wantAllowances: "0",
		},
		{
			name: "individual with deductions and allowances",
			input: IncomeTaxInput{
				TaxpayerCategory: Individual,
				GrossIncome:      d("25000000"),
				Deductions:       d("2000000"),
				Allowances: []Allowance{
					{Type: "housing", Amount: d("1500000")},
					{Type: "transport", Amount: d("1500000")},
				},
			},
			wantTaxable:    "20000000",
			wantStandard:   "2100000",
			wantMinimum:    "0",
			wantPayable:    "2100000",
			wantEffective:  "0.084",
			wantAllowances: "3000000",
		},
		{
			name: "deductions exceed income",
			input: IncomeTaxInput{
				TaxpayerCategory: Individual,
				GrossIncome:      d("1000000"),
				Deductions:       d("3000000"),
			},
			wantTaxable:    "0",
			wantStandard:   "0",
			wantMinimum:    "0",
			wantPayable:    "0",
			wantEffective:  "0",
			wantAllowances: "0",
		},
		{
			name: "zero income",
			input: IncomeTaxInput{
				TaxpayerCategory: Individual,
			},
			wantTaxable:    "0",
			wantStandard:   "0",
			wantMinimum:    "0",
			wantPayable:    "0",
			wantEffective:  "0",
			wantAllowances: "0",
		},
		{
			name: "large company pays minimum tax",
			input: IncomeTaxInput{
				TaxpayerCategory: Large,
				GrossIncome:      d("2100000000"),
				Deductions:       d("2090000000"),
			},
			wantTaxable:    "10000000",
			wantStandard:   "3000000",
			wantMinimum:    "10500000",
			wantPayable:    "10500000",
			wantEffective:  "0.005",
			wantAllowances: "0",
		},
		{
			name: "small company pays standard tax",
			input: IncomeTaxInput{
				TaxpayerCategory: Small,
				GrossIncome:      d("100000000"),
				Deductions:       d("60000000"),
			},
			wantTaxable:    "40000000",
			wantStandard:   "12000000",
			wantMinimum:    "250000",
			wantPayable:    "12000000",
			wantEffective:  "0.12",
			wantAllowances: "0",
		},
	}

	calc := NewCalculator(DefaultConfig())

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.CalculateIncomeTax(tc.input)
			require.NoError(t, err)

			assertDecimal(t, tc.wantTaxable, got.TaxableIncome, "taxable income")
			assertDecimal(t, tc.wantStandard, got.StandardTax, "standard tax")
			assertDecimal(t, tc.wantMinimum, got.MinimumTax, "minimum tax")
			assertDecimal(t, tc.wantPayable, got.PayableTax, "payable tax")
			assertDecimal(t, tc.wantEffective, got.EffectiveRate, "effective rate")
			assertDecimal(t, tc.wantAllowances, got.TotalAllowances, "allowances")
			assert.Nil(t, got.Penalties)
		})
	}
}

func TestCalculateIncomeTaxLatePayment(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.CalculateIncomeTax(IncomeTaxInput{
		TaxpayerCategory: Individual,
		GrossIncome:      d("25000000"),
		DueDate:          datePtr("2024-03-31"),
		PaymentDate:      datePtr("2024-04-10"),
	})
	require.NoError(t, err)
	require.NotNil(t, got.Penalties)

	assert.Equal(t, 10, got.Penalties.DaysLate)
	assertDecimal(t, "155000", got.Penalties.LateFilingPenalty)
	assertDecimal(t, "42.47", got.Penalties.LatePaymentInterest)
	assertDecimal(t, "155042.47", got.Penalties.TotalPenalty)
}

func TestCalculateIncomeTaxPaidOnTime(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.CalculateIncomeTax(IncomeTaxInput{
		TaxpayerCategory: Medium,
		GrossIncome:      d("25000000"),
		DueDate:          datePtr("2024-03-31"),
		PaymentDate:      datePtr("2024-03-30"),
	})
	require.NoError(t, err)
	assert.Nil(t, got.Penalties)
}

func TestCalculateIncomeTaxIsIdempotent(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	in := IncomeTaxInput{
		TaxpayerCategory: Individual,
		GrossIncome:      d("73456789.12"),
		Allowances:       []Allowance{{Type: "housing", Amount: d("123456.78")}},
		DueDate:          datePtr("2024-03-31"),
		PaymentDate:      datePtr("2024-05-01"),
	}

	first, err := calc.CalculateIncomeTax(in)
	require.NoError(t, err)

	second, err := calc.CalculateIncomeTax(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateIncomeTaxErrors(t *testing.T) {
	tcs := map[string]IncomeTaxInput{
		"negative gross income": {TaxpayerCategory: Individual, GrossIncome: d("-1")},
		"negative deductions":   {TaxpayerCategory: Individual, GrossIncome: d("1"), Deductions: d("-1")},
		"negative allowance": {
			TaxpayerCategory: Individual,
			GrossIncome:      d("1"),
			Allowances:       []Allowance{{Type: "housing", Amount: d("-5")}},
		},
		"unknown category": {TaxpayerCategory: "Partnership", GrossIncome: d("1")},
	}

	calc := NewCalculator(DefaultConfig())

	for name, in := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := calc.CalculateIncomeTax(in)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}
