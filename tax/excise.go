package tax

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ExciseItem struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	Value       decimal.Decimal
}

type ExciseDutyInput struct {
	TaxYear         int
	ProductCategory ProductCategory
	Items           []ExciseItem
	DueDate         *time.Time
	PaymentDate     *time.Time
}

type ExciseItemDuty struct {
	ProductCode   string          `json:"productCode"`
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	Value         decimal.Decimal `json:"value"`
	SpecificDuty  decimal.Decimal `json:"specificDuty"`
	AdValoremDuty decimal.Decimal `json:"adValoremDuty"`
	TotalDuty     decimal.Decimal `json:"totalDuty"`
}

type ExciseDutyCalculation struct {
	TaxYear            int                 `json:"taxYear"`
	ProductCategory    ProductCategory     `json:"productCategory"`
	SpecificRate       decimal.Decimal     `json:"specificRate"`
	AdValoremRate      decimal.Decimal     `json:"adValoremRate"`
	Items              []ExciseItemDuty    `json:"items"`
	TotalSpecificDuty  decimal.Decimal     `json:"totalSpecificDuty"`
	TotalAdValoremDuty decimal.Decimal     `json:"totalAdValoremDuty"`
	TotalExciseDuty    decimal.Decimal     `json:"totalExciseDuty"`
	Penalties          *PenaltyCalculation `json:"penalties,omitempty"`
}

func (c *Calculator) CalculateExciseDuty(in ExciseDutyInput) (ExciseDutyCalculation, error) {
	if len(in.Items) == 0 {
		return ExciseDutyCalculation{}, invalidInput("no excise items")
	}

	for _, item := range in.Items {
		if item.Quantity.IsNegative() {
			return ExciseDutyCalculation{}, invalidInput("item %q quantity %s is negative", item.ProductCode, item.Quantity)
		}
		if item.Value.IsNegative() {
			return ExciseDutyCalculation{}, invalidInput("item %q value %s is negative", item.ProductCode, item.Value)
		}
	}

	r, ok := c.conf.ExciseRates[in.ProductCategory]
	if !in.ProductCategory.Valid() || !ok {
		return ExciseDutyCalculation{}, errors.Wrapf(ErrUnknownCategory, "%q", in.ProductCategory)
	}

	result := ExciseDutyCalculation{
		TaxYear:            in.TaxYear,
		ProductCategory:    in.ProductCategory,
		SpecificRate:       r.SpecificRate,
		AdValoremRate:      r.AdValoremRate,
		Items:              make([]ExciseItemDuty, 0, len(in.Items)),
		TotalSpecificDuty:  decimal.Zero,
		TotalAdValoremDuty: decimal.Zero,
		TotalExciseDuty:    decimal.Zero,
	}

	for _, item := range in.Items {
		specific := item.Quantity.Mul(r.SpecificRate)
		adValorem := item.Value.Mul(r.AdValoremRate)

		result.Items = append(result.Items, ExciseItemDuty{
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Value:         item.Value,
			SpecificDuty:  specific,
			AdValoremDuty: adValorem,
			TotalDuty:     specific.Add(adValorem),
		})

		result.TotalSpecificDuty = result.TotalSpecificDuty.Add(specific)
		result.TotalAdValoremDuty = result.TotalAdValoremDuty.Add(adValorem)
	}

	result.TotalExciseDuty = result.TotalSpecificDuty.Add(result.TotalAdValoremDuty)

	penalties, err := c.penaltyFor(result.TotalExciseDuty, ExciseDuty, AssessTimeliness(in.DueDate, in.PaymentDate))
	if err != nil {
		return ExciseDutyCalculation{}, err
	}
	result.Penalties = penalties

	return result, nil
}
