package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

type Employee struct {
	EmployeeID   string
	EmployeeName string
	AnnualSalary decimal.Decimal
}

type PayrollTaxInput struct {
	TaxYear        int
	Employees      []Employee
	TotalPayroll   decimal.Decimal // summed from Employees when zero
	DueDate        *time.Time
	RemittanceDate *time.Time
}

type EmployeePAYE struct {
	EmployeeID    string          `json:"employeeId"`
	EmployeeName  string          `json:"employeeName"`
	AnnualSalary  decimal.Decimal `json:"annualSalary"`
	TaxableSalary decimal.Decimal `json:"taxableSalary"`
	PAYEAmount    decimal.Decimal `json:"payeAmount"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	MarginalRate  decimal.Decimal `json:"marginalRate"`
}

type PayrollTaxCalculation struct {
	TaxYear               int                 `json:"taxYear"`
	Employees             []EmployeePAYE      `json:"employees"`
	TotalPayroll          decimal.Decimal     `json:"totalPayroll"`
	TotalPAYE             decimal.Decimal     `json:"totalPaye"`
	SkillsDevelopmentLevy decimal.Decimal     `json:"skillsDevelopmentLevy"`
	TotalPayrollTax       decimal.Decimal     `json:"totalPayrollTax"`
	Penalties             *PenaltyCalculation `json:"penalties,omitempty"`
}

func (c *Calculator) CalculatePayrollTax(in PayrollTaxInput) (PayrollTaxCalculation, error) {
	if len(in.Employees) == 0 {
		return PayrollTaxCalculation{}, invalidInput("no employees")
	}

	if in.TotalPayroll.IsNegative() {
		return PayrollTaxCalculation{}, invalidInput("total payroll %s is negative", in.TotalPayroll)
	}

	if err := c.conf.PAYEBrackets.Validate(); err != nil {
		return PayrollTaxCalculation{}, err
	}

	threshold := decimal.Zero
	if first := c.conf.PAYEBrackets[0]; first.Upper.Valid && first.Rate.IsZero() {
		threshold = first.Upper.Decimal
	}

	result := PayrollTaxCalculation{
		TaxYear:   in.TaxYear,
		Employees: make([]EmployeePAYE, 0, len(in.Employees)),
		TotalPAYE: decimal.Zero,
	}

	salaries := decimal.Zero

	for _, e := range in.Employees {
		if e.AnnualSalary.IsNegative() {
			return PayrollTaxCalculation{}, invalidInput("employee %q salary %s is negative", e.EmployeeID, e.AnnualSalary)
		}

		bt, err := ComputeBracketTax(e.AnnualSalary, c.conf.PAYEBrackets)
		if err != nil {
			return PayrollTaxCalculation{}, err
		}

		result.Employees = append(result.Employees, EmployeePAYE{
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			AnnualSalary:  e.AnnualSalary,
			TaxableSalary: decimal.Max(decimal.Zero, e.AnnualSalary.Sub(threshold)),
			PAYEAmount:    bt.Tax,
			EffectiveRate: ratio(bt.Tax, e.AnnualSalary),
			MarginalRate:  bt.MarginalRate,
		})

		result.TotalPAYE = result.TotalPAYE.Add(bt.Tax)
		salaries = salaries.Add(e.AnnualSalary)
	}

	result.TotalPayroll = in.TotalPayroll
	if result.TotalPayroll.IsZero() {
		result.TotalPayroll = salaries
	}

	result.SkillsDevelopmentLevy = decimal.Zero
	if result.TotalPayroll.Div(monthsPerYear).GreaterThan(c.conf.SkillsLevyMonthlyThreshold) {
		result.SkillsDevelopmentLevy = result.TotalPayroll.Mul(c.conf.SkillsLevyRate)
	}

	result.TotalPayrollTax = result.TotalPAYE.Add(result.SkillsDevelopmentLevy)

	penalties, err := c.penaltyFor(result.TotalPayrollTax, PayrollTax, AssessTimeliness(in.DueDate, in.RemittanceDate))
	if err != nil {
		return PayrollTaxCalculation{}, err
	}
	result.Penalties = penalties

	return result, nil
}
