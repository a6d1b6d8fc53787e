package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/AnnaCarter465/salone-tax/tax"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type IncomeTaxCSV struct {
	TaxpayerCategory tax.TaxpayerCategory `json:"taxpayerCategory"`
	GrossIncome      decimal.Decimal      `json:"grossIncome"`
	PayableTax       decimal.Decimal      `json:"payableTax"`
}

type IncomeTaxCSVResponse struct {
	Taxes []IncomeTaxCSV `json:"taxes"`
}

var csvHeader = []string{"taxpayerCategory", "grossIncome", "deductions"}

// CalculateIncomeTaxWithCSV computes income tax for every row of a CSV
// upload. The whole upload is rejected if any row is bad.
func (t *TaxHandler) CalculateIncomeTaxWithCSV(c echo.Context) error {
	if !strings.HasPrefix(c.Request().Header.Get("Content-Type"), "text/csv") {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Unacceptable content, require CSV content",
		})
	}

	rows, err := csv.NewReader(c.Request().Body).ReadAll()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request, might not be csv format",
		})
	}

	if len(rows) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Wrong csv content, no content",
		})
	}

	if len(rows) == 1 {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Wrong csv content, should have more than 1 row due to it is header",
		})
	}

	var inputs []tax.IncomeTaxInput

	for i, row := range rows {
		if len(row) != len(csvHeader) {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: "Wrong csv column length",
			})
		}

		if i == 0 {
			for j, col := range csvHeader {
				if strings.TrimSpace(row[j]) != col {
					return c.JSON(http.StatusBadRequest, ResponseMsg{
						Message: "Wrong csv header",
					})
				}
			}

			continue
		}

		category := tax.TaxpayerCategory(strings.TrimSpace(row[0]))
		if !category.Valid() {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: fmt.Sprintf("Invalid taxpayer category at row %d", i),
			})
		}

		income, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: fmt.Sprintf("Invalid gross income amount at row %d", i),
			})
		}

		deductions, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: fmt.Sprintf("Invalid deductions amount at row %d", i),
			})
		}

		inputs = append(inputs, tax.IncomeTaxInput{
			TaxpayerCategory: category,
			GrossIncome:      income,
			Deductions:       deductions,
		})
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	taxes := make([]IncomeTaxCSV, 0, len(inputs))

	for _, in := range inputs {
		result, err := calc.CalculateIncomeTax(in)
		if err != nil {
			return t.calculationError(c, err)
		}

		taxes = append(taxes, IncomeTaxCSV{
			TaxpayerCategory: in.TaxpayerCategory,
			GrossIncome:      in.GrossIncome,
			PayableTax:       result.PayableTax,
		})
	}

	return c.JSON(http.StatusOK, &IncomeTaxCSVResponse{
		Taxes: taxes,
	})
}
