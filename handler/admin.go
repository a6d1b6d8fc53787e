package handler

import (
	"context"
	"net/http"

	"github.com/AnnaCarter465/salone-tax/database"
	"github.com/AnnaCarter465/salone-tax/tax"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AdminPenaltyRateRequest struct {
	LateFilingRate    *decimal.Decimal `json:"lateFilingRate" validate:"required"`
	DailyInterestRate *decimal.Decimal `json:"dailyInterestRate" validate:"required"`
}

type AdminPenaltyRateResponse struct {
	TaxType           string          `json:"taxType"`
	LateFilingRate    decimal.Decimal `json:"lateFilingRate"`
	DailyInterestRate decimal.Decimal `json:"dailyInterestRate"`
}

type IAdminDB interface {
	UpsertPenaltyRate(ctx context.Context, rate database.PenaltyRate) (database.PenaltyRate, error)
}

type AdminHandler struct {
	vl  *validator.Validate
	db  IAdminDB
	log *zap.Logger
}

func NewAdminHandler(vl *validator.Validate, db IAdminDB, log *zap.Logger) *AdminHandler {
	return &AdminHandler{vl, db, log}
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

func (a *AdminHandler) UpdatePenaltyRates(c echo.Context) error {
	taxType := tax.TaxType(c.Param("taxType"))
	if !taxType.Valid() {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid tax type",
		})
	}

	var req AdminPenaltyRateRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if err := a.vl.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if !validRate(*req.LateFilingRate) || !validRate(*req.DailyInterestRate) {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid rate",
		})
	}

	saved, err := a.db.UpsertPenaltyRate(c.Request().Context(), database.PenaltyRate{
		TaxType:           string(taxType),
		LateFilingRate:    *req.LateFilingRate,
		DailyInterestRate: *req.DailyInterestRate,
	})
	if err != nil {
		a.log.Error("failed to update penalty rates", zap.String("taxType", string(taxType)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to update penalty rates",
		})
	}

	return c.JSON(http.StatusOK, AdminPenaltyRateResponse{
		TaxType:           saved.TaxType,
		LateFilingRate:    saved.LateFilingRate,
		DailyInterestRate: saved.DailyInterestRate,
	})
}
