package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AssessmentInput describes one taxpayer. A nil section does not apply to
// the taxpayer and contributes nothing to the totals.
type AssessmentInput struct {
	TaxpayerID    string
	TaxYear       int
	GSTRegistered bool

	Income      *IncomeTaxInput
	GST         *GSTInput
	Payroll     *PayrollTaxInput
	Excise      *ExciseDutyInput
	Withholding *WithholdingTaxInput
}

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

const (
	IssueLateFiling             = "LateFiling"
	IssueLatePayment            = "LatePayment"
	IssueGSTRegistration        = "GSTRegistrationRequired"
	IssueAllowanceDocumentation = "MissingAllowanceDocumentation"
)

type ComplianceIssue struct {
	IssueType         string     `json:"issueType"`
	Severity          Severity   `json:"severity"`
	Description       string     `json:"description"`
	RecommendedAction string     `json:"recommendedAction"`
	Deduction         int        `json:"deduction"`
	Deadline          *time.Time `json:"deadline,omitempty"`
}

type ComprehensiveAssessment struct {
	TaxpayerID        string                     `json:"taxpayerId"`
	TaxYear           int                        `json:"taxYear"`
	IncomeTax         *IncomeTaxCalculation      `json:"incomeTax,omitempty"`
	GST               *GSTCalculation            `json:"gst,omitempty"`
	PayrollTax        *PayrollTaxCalculation     `json:"payrollTax,omitempty"`
	ExciseDuty        *ExciseDutyCalculation     `json:"exciseDuty,omitempty"`
	WithholdingTax    *WithholdingTaxCalculation `json:"withholdingTax,omitempty"`
	TotalTaxLiability decimal.Decimal            `json:"totalTaxLiability"`
	TotalPenalties    decimal.Decimal            `json:"totalPenalties"`
	GrandTotal        decimal.Decimal            `json:"grandTotal"`
	ComplianceScore   int                        `json:"complianceScore"`
	ComplianceGrade   string                     `json:"complianceGrade"`
	ComplianceIssues  []ComplianceIssue          `json:"complianceIssues"`
}

var stageOrder = [...]Stage{StageIncomeTax, StageGST, StagePayrollTax, StageExciseDuty, StageWithholding}

// PerformComprehensiveAssessment runs every applicable calculator
// concurrently. Any failure fails the whole assessment; when several stages
// fail, the earliest in stageOrder is reported.
func (c *Calculator) PerformComprehensiveAssessment(in AssessmentInput) (ComprehensiveAssessment, error) {
	if in.Income == nil && in.GST == nil && in.Payroll == nil && in.Excise == nil && in.Withholding == nil {
		return ComprehensiveAssessment{}, invalidInput("assessment has no tax sections")
	}

	out := ComprehensiveAssessment{
		TaxpayerID: in.TaxpayerID,
		TaxYear:    in.TaxYear,
	}

	// Each stage writes only its own slot.
	var (
		g    errgroup.Group
		errs [len(stageOrder)]error
	)

	run := func(slot int, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				errs[slot] = &AggregationError{Stage: stageOrder[slot], Err: err}
			}
			return nil
		})
	}

	if in.Income != nil {
		run(0, func() error {
			r, err := c.CalculateIncomeTax(*in.Income)
			out.IncomeTax = &r
			return err
		})
	}

	if in.GST != nil {
		run(1, func() error {
			r, err := c.CalculateGST(*in.GST)
			out.GST = &r
			return err
		})
	}

	if in.Payroll != nil {
		run(2, func() error {
			r, err := c.CalculatePayrollTax(*in.Payroll)
			out.PayrollTax = &r
			return err
		})
	}

	if in.Excise != nil {
		run(3, func() error {
			r, err := c.CalculateExciseDuty(*in.Excise)
			out.ExciseDuty = &r
			return err
		})
	}

	if in.Withholding != nil {
		run(4, func() error {
			r, err := c.CalculateWithholdingTax(*in.Withholding)
			out.WithholdingTax = &r
			return err
		})
	}

	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return ComprehensiveAssessment{}, err
		}
	}

	out.TotalTaxLiability, out.TotalPenalties = out.totals()
	out.GrandTotal = out.TotalTaxLiability.Add(out.TotalPenalties)
	out.ComplianceIssues = complianceIssues(in, out)
	out.ComplianceScore = complianceScore(out.ComplianceIssues)
	out.ComplianceGrade = complianceGrade(out.ComplianceScore)

	return out, nil
}

func (a ComprehensiveAssessment) totals() (liability, penalties decimal.Decimal) {
	liability, penalties = decimal.Zero, decimal.Zero

	add := func(p *PenaltyCalculation) {
		if p != nil {
			penalties = penalties.Add(p.TotalPenalty)
		}
	}

	if a.IncomeTax != nil {
		liability = liability.Add(a.IncomeTax.PayableTax)
		add(a.IncomeTax.Penalties)
	}
	if a.GST != nil {
		liability = liability.Add(a.GST.NetGSTLiability)
		add(a.GST.Penalties)
	}
	if a.PayrollTax != nil {
		liability = liability.Add(a.PayrollTax.TotalPayrollTax)
		add(a.PayrollTax.Penalties)
	}
	if a.ExciseDuty != nil {
		liability = liability.Add(a.ExciseDuty.TotalExciseDuty)
		add(a.ExciseDuty.Penalties)
	}
	if a.WithholdingTax != nil {
		liability = liability.Add(a.WithholdingTax.WithholdingTaxAmount)
	}

	return liability, penalties
}

const (
	lateDeduction         = 10
	registrationDeduction = 15
	documentDeduction     = 5
)

func complianceIssues(in AssessmentInput, a ComprehensiveAssessment) []ComplianceIssue {
	issues := []ComplianceIssue{}

	late := func(issueType string, taxType TaxType, p *PenaltyCalculation) {
		if p == nil {
			return
		}
		verb := "paid"
		action := fmt.Sprintf("Settle the outstanding %s and penalties immediately", taxType)
		if issueType == IssueLateFiling {
			verb = "filed"
			action = fmt.Sprintf("File outstanding %s returns and settle penalties", taxType)
		}
		issues = append(issues, newIssue(issueType, lateDeduction,
			fmt.Sprintf("%s %s %d days late", taxType, verb, p.DaysLate),
			action, nil))
	}

	if a.IncomeTax != nil {
		late(IssueLatePayment, IncomeTax, a.IncomeTax.Penalties)
	}
	if a.GST != nil {
		late(IssueLateFiling, GST, a.GST.Penalties)
	}
	if a.PayrollTax != nil {
		late(IssueLatePayment, PayrollTax, a.PayrollTax.Penalties)
	}
	if a.ExciseDuty != nil {
		late(IssueLatePayment, ExciseDuty, a.ExciseDuty.Penalties)
	}

	if a.GST != nil && a.GST.RegistrationRequired && !in.GSTRegistered {
		issues = append(issues, newIssue(IssueGSTRegistration, registrationDeduction,
			"Gross sales exceed the GST registration threshold but no registration is on record",
			"Register for GST with the National Revenue Authority",
			nil))
	}

	if in.Income != nil {
		for _, al := range in.Income.Allowances {
			if al.Description != "" {
				continue
			}
			issues = append(issues, newIssue(IssueAllowanceDocumentation, documentDeduction,
				fmt.Sprintf("Allowance %q has no supporting documentation", al.Type),
				"Attach documentation for the claimed allowance",
				nil))
		}
	}

	return issues
}

func newIssue(issueType string, deduction int, description, action string, deadline *time.Time) ComplianceIssue {
	return ComplianceIssue{
		IssueType:         issueType,
		Severity:          severityOf(deduction),
		Description:       description,
		RecommendedAction: action,
		Deduction:         deduction,
		Deadline:          deadline,
	}
}

func severityOf(deduction int) Severity {
	switch {
	case deduction >= 20:
		return SeverityCritical
	case deduction >= 15:
		return SeverityHigh
	case deduction >= 10:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func complianceScore(issues []ComplianceIssue) int {
	score := 100
	for _, issue := range issues {
		score -= issue.Deduction
	}
	if score < 0 {
		return 0
	}
	return score
}

func complianceGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
