package tax

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fullAssessmentInput() AssessmentInput {
	return AssessmentInput{
		TaxpayerID:    "TIN-1000234",
		TaxYear:       2024,
		GSTRegistered: false,
		Income: &IncomeTaxInput{
			TaxpayerCategory: Individual,
			TaxYear:          2024,
			GrossIncome:      d("25000000"),
			Allowances:       []Allowance{{Type: "housing", Amount: d("0")}},
			DueDate:          datePtr("2024-03-31"),
			PaymentDate:      datePtr("2024-04-10"),
		},
		GST: &GSTInput{
			TaxYear:         2024,
			GrossSales:      d("600000000"),
			TaxableSupplies: d("10000000"),
			InputTax:        d("800000"),
		},
		Withholding: &WithholdingTaxInput{
			Amount:          d("1000000"),
			WithholdingType: Rent,
			IsResident:      true,
		},
	}
}

func TestPerformComprehensiveAssessment(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.PerformComprehensiveAssessment(fullAssessmentInput())
	require.NoError(t, err)

	require.NotNil(t, got.IncomeTax)
	require.NotNil(t, got.GST)
	require.NotNil(t, got.WithholdingTax)
	assert.Nil(t, got.PayrollTax)
	assert.Nil(t, got.ExciseDuty)

	assertDecimal(t, "3900000", got.TotalTaxLiability)
	assertDecimal(t, "155042.47", got.TotalPenalties)
	assertDecimal(t, "4055042.47", got.GrandTotal)

	assert.Equal(t, 70, got.ComplianceScore)
	assert.Equal(t, "C", got.ComplianceGrade)

	require.Len(t, got.ComplianceIssues, 3)
	assert.Equal(t, IssueLatePayment, got.ComplianceIssues[0].IssueType)
	assert.Equal(t, SeverityMedium, got.ComplianceIssues[0].Severity)
	assert.Equal(t, IssueGSTRegistration, got.ComplianceIssues[1].IssueType)
	assert.Equal(t, SeverityHigh, got.ComplianceIssues[1].Severity)
	assert.Equal(t, IssueAllowanceDocumentation, got.ComplianceIssues[2].IssueType)
	assert.Equal(t, SeverityLow, got.ComplianceIssues[2].Severity)
}

func TestPerformComprehensiveAssessmentCleanTaxpayer(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	in := fullAssessmentInput()
	in.GSTRegistered = true
	in.Income.PaymentDate = datePtr("2024-03-01")
	in.Income.Allowances[0].Description = "Tenancy agreement 2024"
	in.Payroll = &PayrollTaxInput{
		Employees:    []Employee{{EmployeeID: "E-001", AnnualSalary: d("12000000")}},
		TotalPayroll: d("12000000"),
	}
	in.Excise = &ExciseDutyInput{
		ProductCategory: Tobacco,
		Items:           []ExciseItem{{ProductCode: "TB-01", Quantity: d("1000"), Value: d("5000000")}},
	}

	got, err := calc.PerformComprehensiveAssessment(in)
	require.NoError(t, err)

	// 3,100,000 + 700,000 + 1,020,000 + 1,400,000 + 100,000
	assertDecimal(t, "6320000", got.TotalTaxLiability)
	assertDecimal(t, "0", got.TotalPenalties)
	assertDecimal(t, "6320000", got.GrandTotal)
	assert.Equal(t, 100, got.ComplianceScore)
	assert.Equal(t, "A", got.ComplianceGrade)
	assert.Empty(t, got.ComplianceIssues)
}

func TestPerformComprehensiveAssessmentRefundNotCounted(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	got, err := calc.PerformComprehensiveAssessment(AssessmentInput{
		GST: &GSTInput{TaxableSupplies: d("1000000"), InputTax: d("800000")},
	})
	require.NoError(t, err)

	assertDecimal(t, "0", got.TotalTaxLiability)
	assertDecimal(t, "650000", got.GST.RefundDue)
}

func TestPerformComprehensiveAssessmentFailsWhole(t *testing.T) {
	type TC struct {
		name      string
		mutate    func(in *AssessmentInput)
		wantStage Stage
		wantErr   error
	}

	tcs := []TC{
		{
			name:      "income",
			mutate:    func(in *AssessmentInput) { in.Income.GrossIncome = d("-1") },
			wantStage: StageIncomeTax,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "gst",
			mutate:    func(in *AssessmentInput) { in.GST.InputTax = d("-1") },
			wantStage: StageGST,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "payroll",
			mutate:    func(in *AssessmentInput) { in.Payroll = &PayrollTaxInput{} },
			wantStage: StagePayrollTax,
			wantErr:   ErrInvalidInput,
		},
		{
			name: "excise",
			mutate: func(in *AssessmentInput) {
				in.Excise = &ExciseDutyInput{ProductCategory: "Sugar", Items: []ExciseItem{{Quantity: d("1")}}}
			},
			wantStage: StageExciseDuty,
			wantErr:   ErrUnknownCategory,
		},
		{
			name:      "withholding",
			mutate:    func(in *AssessmentInput) { in.Withholding.WithholdingType = "Salary" },
			wantStage: StageWithholding,
			wantErr:   ErrUnknownWithholdingType,
		},
	}

	calc := NewCalculator(DefaultConfig())

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			in := fullAssessmentInput()
			tc.mutate(&in)

			got, err := calc.PerformComprehensiveAssessment(in)
			require.Error(t, err)
			assert.Equal(t, ComprehensiveAssessment{}, got)

			var aggErr *AggregationError
			require.True(t, errors.As(err, &aggErr))
			assert.Equal(t, tc.wantStage, aggErr.Stage)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestPerformComprehensiveAssessmentReportsFirstStage(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	in := fullAssessmentInput()
	in.Income.GrossIncome = d("-1")
	in.GST.InputTax = d("-1")
	in.Withholding.WithholdingType = "Salary"

	for i := 0; i < 500; i++ {
		_, err := calc.PerformComprehensiveAssessment(in)

		var aggErr *AggregationError
		require.True(t, errors.As(err, &aggErr))
		require.Equal(t, StageIncomeTax, aggErr.Stage, "run %d", i)
	}

	in.Income.GrossIncome = d("25000000")

	for i := 0; i < 500; i++ {
		_, err := calc.PerformComprehensiveAssessment(in)

		var aggErr *AggregationError
		require.True(t, errors.As(err, &aggErr))
		require.Equal(t, StageGST, aggErr.Stage, "run %d", i)
	}
}

func TestGSTRegistrationIssueHasNoDeadline(t *testing.T) {
	in := fullAssessmentInput()
	in.GST.DueDate = datePtr("2024-02-15")

	got, err := NewCalculator(DefaultConfig()).PerformComprehensiveAssessment(in)
	require.NoError(t, err)

	var found bool
	for _, issue := range got.ComplianceIssues {
		if issue.IssueType == IssueGSTRegistration {
			found = true
			assert.Nil(t, issue.Deadline)
		}
	}
	assert.True(t, found)
}

func TestPerformComprehensiveAssessmentWithoutSections(t *testing.T) {
	_, err := NewCalculator(DefaultConfig()).PerformComprehensiveAssessment(AssessmentInput{TaxpayerID: "TIN-1"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestComplianceGrade(t *testing.T) {
	tcs := []struct {
		score int
		grade string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {75, "B"}, {74, "C"},
		{60, "C"}, {59, "D"}, {40, "D"}, {39, "F"}, {0, "F"},
	}

	for _, tc := range tcs {
		assert.Equal(t, tc.grade, complianceGrade(tc.score), "score %d", tc.score)
	}
}

func TestComplianceScoreFloorsAtZero(t *testing.T) {
	issues := make([]ComplianceIssue, 0, 12)
	for i := 0; i < 12; i++ {
		issues = append(issues, newIssue(IssueLatePayment, lateDeduction, "late", "pay", nil))
	}

	assert.Equal(t, 0, complianceScore(issues))
}
