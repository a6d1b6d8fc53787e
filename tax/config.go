package tax

import "github.com/shopspring/decimal"

// ExciseRate is the duty charged for one product category.
type ExciseRate struct {
	SpecificRate  decimal.Decimal // per unit
	AdValoremRate decimal.Decimal
}

type PenaltyRates struct {
	LateFilingRate    decimal.Decimal
	DailyInterestRate decimal.Decimal
}

// Config holds every rate table a Calculator reads from. A Calculator never
// writes to its Config.
type Config struct {
	IndividualBrackets BracketTable
	PAYEBrackets       BracketTable

	CorporateRate   decimal.Decimal
	MinimumTaxRates map[TaxpayerCategory]decimal.Decimal

	GSTRate                  decimal.Decimal
	GSTRegistrationThreshold decimal.Decimal

	SkillsLevyRate             decimal.Decimal
	SkillsLevyMonthlyThreshold decimal.Decimal

	ExciseRates map[ProductCategory]ExciseRate

	WithholdingRates            map[WithholdingType]decimal.Decimal
	NonResidentWithholdingRates map[WithholdingType]decimal.Decimal // overrides for non-resident payees

	PenaltyRates map[TaxType]PenaltyRates
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func rate(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func bounded(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

var unbounded = decimal.NullDecimal{}

// DefaultConfig returns the Sierra Leone rate tables. Each call returns
// fresh maps, so callers may override entries freely.
func DefaultConfig() Config {
	return Config{
		IndividualBrackets: BracketTable{
			{Lower: money(0), Upper: bounded(6_000_000), Rate: rate("0")},
			{Lower: money(6_000_000), Upper: bounded(20_000_000), Rate: rate("0.15")},
			{Lower: money(20_000_000), Upper: bounded(50_000_000), Rate: rate("0.20")},
			{Lower: money(50_000_000), Upper: unbounded, Rate: rate("0.30")},
		},
		PAYEBrackets: BracketTable{
			{Lower: money(0), Upper: bounded(7_200_000), Rate: rate("0")},
			{Lower: money(7_200_000), Upper: bounded(14_400_000), Rate: rate("0.15")},
			{Lower: money(14_400_000), Upper: bounded(21_600_000), Rate: rate("0.20")},
			{Lower: money(21_600_000), Upper: bounded(28_800_000), Rate: rate("0.25")},
			{Lower: money(28_800_000), Upper: unbounded, Rate: rate("0.30")},
		},
		CorporateRate: rate("0.30"),
		MinimumTaxRates: map[TaxpayerCategory]decimal.Decimal{
			Large:  rate("0.005"),
			Medium: rate("0.0025"),
			Small:  rate("0.0025"),
			Micro:  rate("0.0025"),
		},
		GSTRate:                    rate("0.15"),
		GSTRegistrationThreshold:   money(500_000_000),
		SkillsLevyRate:             rate("0.025"),
		SkillsLevyMonthlyThreshold: money(500_000),
		ExciseRates: map[ProductCategory]ExciseRate{
			Tobacco: {SpecificRate: money(150), AdValoremRate: rate("0.25")},
			Alcohol: {SpecificRate: money(100), AdValoremRate: rate("0.20")},
			Fuel:    {SpecificRate: money(50), AdValoremRate: rate("0.10")},
		},
		WithholdingRates: map[WithholdingType]decimal.Decimal{
			ProfessionalFees: rate("0.15"),
			ManagementFees:   rate("0.15"),
			Dividends:        rate("0.15"),
			Royalties:        rate("0.15"),
			Interest:         rate("0.15"),
			LotteryWinnings:  rate("0.15"),
			Rent:             rate("0.10"),
			Commissions:      rate("0.05"),
		},
		NonResidentWithholdingRates: map[WithholdingType]decimal.Decimal{
			Rent:        rate("0.15"),
			Commissions: rate("0.15"),
		},
		PenaltyRates: map[TaxType]PenaltyRates{
			IncomeTax:  {LateFilingRate: rate("0.05"), DailyInterestRate: rate("0.0005")},
			GST:        {LateFilingRate: rate("0.10"), DailyInterestRate: rate("0.001")},
			PayrollTax: {LateFilingRate: rate("0.15"), DailyInterestRate: rate("0.0015")},
			ExciseDuty: {LateFilingRate: rate("0.20"), DailyInterestRate: rate("0.002")},
		},
	}
}

// Calculator runs every tax computation against one Config.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	conf Config
}

func NewCalculator(conf Config) *Calculator {
	return &Calculator{conf: conf}
}

func (c *Calculator) Config() Config {
	return c.conf
}
