package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/AnnaCarter465/salone-tax/database"
	"github.com/AnnaCarter465/salone-tax/tax"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Bracket table names stored in the database.
const (
	IndividualBracketTable = "individual"
	PAYEBracketTable       = "paye"
)

type IDB interface {
	FindBrackets(ctx context.Context, tableName string) ([]database.Bracket, error)
	FindPenaltyRates(ctx context.Context) ([]database.PenaltyRate, error)
	SaveAssessment(ctx context.Context, a database.Assessment) error
	FindAssessment(ctx context.Context, id string) (database.Assessment, error)
}

type TaxHandler struct {
	vl  *validator.Validate
	db  IDB
	log *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewTaxHandler(vl *validator.Validate, db IDB, log *zap.Logger) *TaxHandler {
	return &TaxHandler{
		vl:    vl,
		db:    db,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// calculator builds a Calculator from the default rate tables with any
// overrides stored in the database applied on top.
func (t *TaxHandler) calculator(ctx context.Context) (*tax.Calculator, error) {
	conf := tax.DefaultConfig()

	individual, err := t.db.FindBrackets(ctx, IndividualBracketTable)
	if err != nil {
		t.log.Error("failed to find bracket table", zap.String("table", IndividualBracketTable), zap.Error(err))
		return nil, err
	}
	if len(individual) > 0 {
		conf.IndividualBrackets = toBracketTable(individual)
	}

	paye, err := t.db.FindBrackets(ctx, PAYEBracketTable)
	if err != nil {
		t.log.Error("failed to find bracket table", zap.String("table", PAYEBracketTable), zap.Error(err))
		return nil, err
	}
	if len(paye) > 0 {
		conf.PAYEBrackets = toBracketTable(paye)
	}

	rates, err := t.db.FindPenaltyRates(ctx)
	if err != nil {
		t.log.Error("failed to find penalty rates", zap.Error(err))
		return nil, err
	}

	for _, r := range rates {
		taxType := tax.TaxType(r.TaxType)
		if !taxType.Valid() {
			t.log.Warn("ignoring penalty rates for unknown tax type", zap.String("taxType", r.TaxType))
			continue
		}

		conf.PenaltyRates[taxType] = tax.PenaltyRates{
			LateFilingRate:    r.LateFilingRate,
			DailyInterestRate: r.DailyInterestRate,
		}
	}

	return tax.NewCalculator(conf), nil
}

func toBracketTable(rows []database.Bracket) tax.BracketTable {
	table := make(tax.BracketTable, 0, len(rows))
	for _, r := range rows {
		table = append(table, tax.Bracket{
			Lower: r.LowerBound,
			Upper: r.UpperBound,
			Rate:  r.Rate,
		})
	}
	return table
}

// bind decodes and validates req, writing the 400 response itself. It
// reports whether the handler should continue.
func (t *TaxHandler) bind(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if err := t.vl.Struct(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	return true, nil
}

// calculationError maps engine errors to responses. A malformed rate table
// is our fault, everything else is the caller's.
func (t *TaxHandler) calculationError(c echo.Context, err error) error {
	var stage string

	var aggErr *tax.AggregationError
	if errors.As(err, &aggErr) {
		stage = string(aggErr.Stage)
	}

	if errors.Is(err, tax.ErrInvalidBracketTable) {
		t.log.Error("invalid bracket table configuration", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Invalid tax configuration",
			Stage:   stage,
		})
	}

	if errors.Is(err, tax.ErrInvalidInput) ||
		errors.Is(err, tax.ErrUnknownCategory) ||
		errors.Is(err, tax.ErrUnknownWithholdingType) {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: err.Error(),
			Stage:   stage,
		})
	}

	t.log.Error("tax calculation failed", zap.Error(err))

	return c.JSON(http.StatusInternalServerError, ResponseMsg{
		Message: "Internal server error",
		Stage:   stage,
	})
}

func (t *TaxHandler) internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ResponseMsg{
		Message: "Internal server error",
	})
}

func (t *TaxHandler) CalculateIncomeTax(c echo.Context) error {
	var req IncomeTaxRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculateIncomeTax(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (t *TaxHandler) CalculateGST(c echo.Context) error {
	var req GSTRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculateGST(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (t *TaxHandler) CalculatePayrollTax(c echo.Context) error {
	var req PayrollTaxRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculatePayrollTax(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (t *TaxHandler) CalculateExciseDuty(c echo.Context) error {
	var req ExciseDutyRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculateExciseDuty(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (t *TaxHandler) CalculateWithholdingTax(c echo.Context) error {
	var req WithholdingTaxRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculateWithholdingTax(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (t *TaxHandler) CalculatePenalties(c echo.Context) error {
	var req PenaltyRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	calc, err := t.calculator(c.Request().Context())
	if err != nil {
		return t.internalError(c)
	}

	result, err := calc.CalculatePenalty(
		value(req.TaxAmount),
		tax.TaxType(req.TaxType),
		*parseDate(req.DueDate),
		*parseDate(req.ActualDate),
	)
	if err != nil {
		return t.calculationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
