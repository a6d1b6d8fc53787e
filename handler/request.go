package handler

import (
	"time"

	"github.com/AnnaCarter465/salone-tax/tax"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type AllowanceRequest struct {
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type IncomeTaxRequest struct {
	TaxpayerCategory string             `json:"taxpayerCategory" validate:"required,oneof=Individual Large Medium Small Micro"`
	TaxYear          int                `json:"taxYear" validate:"omitempty,gte=2000,lte=2100"`
	GrossIncome      *decimal.Decimal   `json:"grossIncome" validate:"required"`
	Deductions       decimal.Decimal    `json:"deductions"`
	Allowances       []AllowanceRequest `json:"allowances" validate:"dive"`
	DueDate          string             `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentDate      string             `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
}

type GSTRequest struct {
	TaxYear           int              `json:"taxYear" validate:"omitempty,gte=2000,lte=2100"`
	GrossSales        decimal.Decimal  `json:"grossSales"`
	TaxableSupplies   *decimal.Decimal `json:"taxableSupplies" validate:"required"`
	ExemptSupplies    decimal.Decimal  `json:"exemptSupplies"`
	ZeroRatedSupplies decimal.Decimal  `json:"zeroRatedSupplies"`
	InputTax          decimal.Decimal  `json:"inputTax"`
	IsExport          bool             `json:"isExport"`
	IsImport          bool             `json:"isImport"`
	ImportValue       decimal.Decimal  `json:"importValue"`
	DueDate           string           `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	FilingDate        string           `json:"filingDate" validate:"omitempty,datetime=2006-01-02"`
}

type EmployeeRequest struct {
	EmployeeID   string           `json:"employeeId" validate:"required"`
	EmployeeName string           `json:"employeeName"`
	AnnualSalary *decimal.Decimal `json:"annualSalary" validate:"required"`
}

type PayrollTaxRequest struct {
	TaxYear        int               `json:"taxYear" validate:"omitempty,gte=2000,lte=2100"`
	Employees      []EmployeeRequest `json:"employees" validate:"dive"`
	TotalPayroll   decimal.Decimal   `json:"totalPayroll"`
	DueDate        string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	RemittanceDate string            `json:"remittanceDate" validate:"omitempty,datetime=2006-01-02"`
}

type ExciseItemRequest struct {
	ProductCode string           `json:"productCode" validate:"required"`
	ProductName string           `json:"productName"`
	Quantity    *decimal.Decimal `json:"quantity" validate:"required"`
	Value       *decimal.Decimal `json:"value" validate:"required"`
}

type ExciseDutyRequest struct {
	TaxYear         int                 `json:"taxYear" validate:"omitempty,gte=2000,lte=2100"`
	ProductCategory string              `json:"productCategory" validate:"required"`
	Items           []ExciseItemRequest `json:"items" validate:"dive"`
	DueDate         string              `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentDate     string              `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
}

type WithholdingTaxRequest struct {
	Amount             *decimal.Decimal `json:"amount" validate:"required"`
	WithholdingTaxType string           `json:"withholdingTaxType" validate:"required"`
	IsResident         bool             `json:"isResident"`
}

type PenaltyRequest struct {
	TaxAmount  *decimal.Decimal `json:"taxAmount" validate:"required"`
	TaxType    string           `json:"taxType" validate:"required,oneof=IncomeTax GST PayrollTax ExciseDuty"`
	DueDate    string           `json:"dueDate" validate:"required,datetime=2006-01-02"`
	ActualDate string           `json:"actualDate" validate:"required,datetime=2006-01-02"`
}

type AssessmentRequest struct {
	TaxpayerID    string                 `json:"taxpayerId" validate:"required"`
	TaxYear       int                    `json:"taxYear" validate:"required,gte=2000,lte=2100"`
	GSTRegistered bool                   `json:"gstRegistered"`
	Income        *IncomeTaxRequest      `json:"income" validate:"omitempty"`
	GST           *GSTRequest            `json:"gst" validate:"omitempty"`
	Payroll       *PayrollTaxRequest     `json:"payroll" validate:"omitempty"`
	Excise        *ExciseDutyRequest     `json:"excise" validate:"omitempty"`
	Withholding   *WithholdingTaxRequest `json:"withholding" validate:"omitempty"`
}

// parseDate treats an empty string as absent. Formats are checked by the
// validator before conversion.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}

	return &t
}

// value reads a required amount. The validator rejects nil before any
// conversion runs.
func value(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (r IncomeTaxRequest) toInput() tax.IncomeTaxInput {
	allowances := make([]tax.Allowance, 0, len(r.Allowances))
	for _, a := range r.Allowances {
		allowances = append(allowances, tax.Allowance{
			Type:        a.Type,
			Amount:      a.Amount,
			Description: a.Description,
		})
	}

	return tax.IncomeTaxInput{
		TaxpayerCategory: tax.TaxpayerCategory(r.TaxpayerCategory),
		TaxYear:          r.TaxYear,
		GrossIncome:      value(r.GrossIncome),
		Deductions:       r.Deductions,
		Allowances:       allowances,
		DueDate:          parseDate(r.DueDate),
		PaymentDate:      parseDate(r.PaymentDate),
	}
}

func (r GSTRequest) toInput() tax.GSTInput {
	return tax.GSTInput{
		TaxYear:           r.TaxYear,
		GrossSales:        r.GrossSales,
		TaxableSupplies:   value(r.TaxableSupplies),
		ExemptSupplies:    r.ExemptSupplies,
		ZeroRatedSupplies: r.ZeroRatedSupplies,
		InputTax:          r.InputTax,
		IsExport:          r.IsExport,
		IsImport:          r.IsImport,
		ImportValue:       r.ImportValue,
		DueDate:           parseDate(r.DueDate),
		FilingDate:        parseDate(r.FilingDate),
	}
}

func (r PayrollTaxRequest) toInput() tax.PayrollTaxInput {
	employees := make([]tax.Employee, 0, len(r.Employees))
	for _, e := range r.Employees {
		employees = append(employees, tax.Employee{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			AnnualSalary: value(e.AnnualSalary),
		})
	}

	return tax.PayrollTaxInput{
		TaxYear:        r.TaxYear,
		Employees:      employees,
		TotalPayroll:   r.TotalPayroll,
		DueDate:        parseDate(r.DueDate),
		RemittanceDate: parseDate(r.RemittanceDate),
	}
}

func (r ExciseDutyRequest) toInput() tax.ExciseDutyInput {
	items := make([]tax.ExciseItem, 0, len(r.Items))
	for _, i := range r.Items {
		items = append(items, tax.ExciseItem{
			ProductCode: i.ProductCode,
			ProductName: i.ProductName,
			Quantity:    value(i.Quantity),
			Value:       value(i.Value),
		})
	}

	return tax.ExciseDutyInput{
		TaxYear:         r.TaxYear,
		ProductCategory: tax.ProductCategory(r.ProductCategory),
		Items:           items,
		DueDate:         parseDate(r.DueDate),
		PaymentDate:     parseDate(r.PaymentDate),
	}
}

func (r WithholdingTaxRequest) toInput() tax.WithholdingTaxInput {
	return tax.WithholdingTaxInput{
		Amount:          value(r.Amount),
		WithholdingType: tax.WithholdingType(r.WithholdingTaxType),
		IsResident:      r.IsResident,
	}
}

// toInput fills a missing section tax year from the assessment's.
func (r AssessmentRequest) toInput() tax.AssessmentInput {
	in := tax.AssessmentInput{
		TaxpayerID:    r.TaxpayerID,
		TaxYear:       r.TaxYear,
		GSTRegistered: r.GSTRegistered,
	}

	year := func(y int) int {
		if y == 0 {
			return r.TaxYear
		}
		return y
	}

	if r.Income != nil {
		income := r.Income.toInput()
		income.TaxYear = year(income.TaxYear)
		in.Income = &income
	}

	if r.GST != nil {
		gst := r.GST.toInput()
		gst.TaxYear = year(gst.TaxYear)
		in.GST = &gst
	}

	if r.Payroll != nil {
		payroll := r.Payroll.toInput()
		payroll.TaxYear = year(payroll.TaxYear)
		in.Payroll = &payroll
	}

	if r.Excise != nil {
		excise := r.Excise.toInput()
		excise.TaxYear = year(excise.TaxYear)
		in.Excise = &excise
	}

	if r.Withholding != nil {
		withholding := r.Withholding.toInput()
		in.Withholding = &withholding
	}

	return in
}
