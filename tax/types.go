package tax

type TaxpayerCategory string

const (
	Individual TaxpayerCategory = "Individual"
	Large      TaxpayerCategory = "Large"
	Medium     TaxpayerCategory = "Medium"
	Small      TaxpayerCategory = "Small"
	Micro      TaxpayerCategory = "Micro"
)

func (c TaxpayerCategory) Valid() bool {
	switch c {
	case Individual, Large, Medium, Small, Micro:
		return true
	}
	return false
}

// TaxType selects the penalty regime applied to a late return.
type TaxType string

const (
	IncomeTax  TaxType = "IncomeTax"
	GST        TaxType = "GST"
	PayrollTax TaxType = "PayrollTax"
	ExciseDuty TaxType = "ExciseDuty"
)

func (t TaxType) Valid() bool {
	switch t {
	case IncomeTax, GST, PayrollTax, ExciseDuty:
		return true
	}
	return false
}

type ProductCategory string

const (
	Tobacco ProductCategory = "Tobacco"
	Alcohol ProductCategory = "Alcohol"
	Fuel    ProductCategory = "Fuel"
)

func (p ProductCategory) Valid() bool {
	switch p {
	case Tobacco, Alcohol, Fuel:
		return true
	}
	return false
}

type WithholdingType string

const (
	ProfessionalFees WithholdingType = "ProfessionalFees"
	ManagementFees   WithholdingType = "ManagementFees"
	Dividends        WithholdingType = "Dividends"
	Royalties        WithholdingType = "Royalties"
	Interest         WithholdingType = "Interest"
	LotteryWinnings  WithholdingType = "LotteryWinnings"
	Rent             WithholdingType = "Rent"
	Commissions      WithholdingType = "Commissions"
)

func (w WithholdingType) Valid() bool {
	switch w {
	case ProfessionalFees, ManagementFees, Dividends, Royalties,
		Interest, LotteryWinnings, Rent, Commissions:
		return true
	}
	return false
}
