package tax

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestCalculatePenalty(t *testing.T) {
	type TC struct {
		name         string
		taxAmount    string
		taxType      TaxType
		due          string
		actual       string
		wantDays     int
		wantFiling   string
		wantInterest string
		wantTotal    string
	}

	tcs := []TC{
		{
			name:         "income tax 15 days late",
			taxAmount:    "5000000",
			taxType:      IncomeTax,
			due:          "2024-03-31",
			actual:       "2024-04-15",
			wantDays:     15,
			wantFiling:   "250000",
			wantInterest: "102.74",
			wantTotal:    "250102.74",
		},
		{
			name:         "gst 30 days late",
			taxAmount:    "700000",
			taxType:      GST,
			due:          "2024-01-15",
			actual:       "2024-02-14",
			wantDays:     30,
			wantFiling:   "70000",
			wantInterest: "57.53",
			wantTotal:    "70057.53",
		},
		{
			name:         "payroll tax one day late",
			taxAmount:    "1000000",
			taxType:      PayrollTax,
			due:          "2024-01-15",
			actual:       "2024-01-16",
			wantDays:     1,
			wantFiling:   "150000",
			wantInterest: "4.11",
			wantTotal:    "150004.11",
		},
		{
			name:         "excise duty 365 days late",
			taxAmount:    "1400000",
			taxType:      ExciseDuty,
			due:          "2023-01-01",
			actual:       "2024-01-01",
			wantDays:     365,
			wantFiling:   "280000",
			wantInterest: "2800",
			wantTotal:    "282800",
		},
		{
			name:         "paid on due date",
			taxAmount:    "5000000",
			taxType:      IncomeTax,
			due:          "2024-03-31",
			actual:       "2024-03-31",
			wantDays:     0,
			wantFiling:   "0",
			wantInterest: "0",
			wantTotal:    "0",
		},
		{
			name:         "paid early",
			taxAmount:    "5000000",
			taxType:      ExciseDuty,
			due:          "2024-03-31",
			actual:       "2024-02-01",
			wantDays:     0,
			wantFiling:   "0",
			wantInterest: "0",
			wantTotal:    "0",
		},
	}

	calc := NewCalculator(DefaultConfig())

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.CalculatePenalty(d(tc.taxAmount), tc.taxType, date(tc.due), date(tc.actual))
			require.NoError(t, err)

			assert.Equal(t, tc.wantDays, got.DaysLate)
			assertDecimal(t, tc.wantFiling, got.LateFilingPenalty)
			assertDecimal(t, tc.wantInterest, got.LatePaymentInterest)
			assertDecimal(t, tc.wantTotal, got.TotalPenalty)

			if tc.wantDays == 0 {
				assert.Empty(t, got.PenaltyBreakdown)
				return
			}

			require.Len(t, got.PenaltyBreakdown, 2)
			assert.Equal(t, PenaltyLateFiling, got.PenaltyBreakdown[0].Type)
			assert.Equal(t, PenaltyLatePayment, got.PenaltyBreakdown[1].Type)
			assertDecimal(t, tc.wantFiling, got.PenaltyBreakdown[0].Amount)
			assertDecimal(t, tc.wantInterest, got.PenaltyBreakdown[1].Amount)
		})
	}
}

func TestCalculatePenaltyFormula(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.CalculatePenalty(d("5000000"), IncomeTax, date("2024-03-31"), date("2024-04-15"))
	require.NoError(t, err)

	assert.Equal(t, "5000000 x 5%", got.PenaltyBreakdown[0].Calculation)
	assert.Equal(t, "5000000 x 0.05% x 15 / 365", got.PenaltyBreakdown[1].Calculation)
}

func TestCalculatePenaltyIgnoresTimeOfDay(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	due := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	actual := time.Date(2024, 4, 1, 0, 1, 0, 0, time.UTC)

	got, err := calc.CalculatePenalty(d("1000"), IncomeTax, due, actual)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DaysLate)

	sameDay := time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC)

	got, err = calc.CalculatePenalty(d("1000"), IncomeTax, sameDay, due)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DaysLate)
}

func TestCalculatePenaltyErrors(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	_, err := calc.CalculatePenalty(d("-1"), IncomeTax, date("2024-01-01"), date("2024-02-01"))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = calc.CalculatePenalty(d("100"), TaxType("StampDuty"), date("2024-01-01"), date("2024-02-01"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAssessTimeliness(t *testing.T) {
	assert.Equal(t, OnTime{}, AssessTimeliness(nil, datePtr("2024-01-01")))
	assert.Equal(t, OnTime{}, AssessTimeliness(datePtr("2024-01-01"), nil))
	assert.Equal(t, OnTime{}, AssessTimeliness(datePtr("2024-01-02"), datePtr("2024-01-01")))
	assert.Equal(t, Late{Days: 29}, AssessTimeliness(datePtr("2024-02-01"), datePtr("2024-03-01")))
	assert.Equal(t, Late{Days: 118338}, AssessTimeliness(datePtr("1700-01-01"), datePtr("2024-01-01")))
	assert.Equal(t, Late{Days: 146097}, AssessTimeliness(datePtr("1600-03-01"), datePtr("2000-03-01")))
}

func TestCalculatePenaltyOverCenturies(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.CalculatePenalty(d("1000"), IncomeTax, date("1700-01-01"), date("2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, 118338, got.DaysLate)
	// 1000 x 0.0005 x 118338 / 365
	assertDecimal(t, "162.11", got.LatePaymentInterest)
}
