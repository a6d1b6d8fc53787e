package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AnnaCarter465/salone-tax/database"
	"github.com/AnnaCarter465/salone-tax/tax"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type AssessmentResponse struct {
	AssessmentID string    `json:"assessmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	tax.ComprehensiveAssessment
}

func (t *TaxHandler) CreateAssessment(c echo.Context) error {
	var req AssessmentRequest

	if ok, err := t.bind(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()

	calc, err := t.calculator(ctx)
	if err != nil {
		return t.internalError(c)
	}

	assessment, err := calc.PerformComprehensiveAssessment(req.toInput())
	if err != nil {
		return t.calculationError(c, err)
	}

	resp := AssessmentResponse{
		AssessmentID:            t.newID(),
		CreatedAt:               t.now().UTC(),
		ComprehensiveAssessment: assessment,
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		t.log.Error("failed to encode assessment", zap.Error(err))
		return t.internalError(c)
	}

	err = t.db.SaveAssessment(ctx, database.Assessment{
		ID:              resp.AssessmentID,
		TaxpayerID:      assessment.TaxpayerID,
		TaxYear:         assessment.TaxYear,
		GrandTotal:      assessment.GrandTotal,
		ComplianceScore: assessment.ComplianceScore,
		ComplianceGrade: assessment.ComplianceGrade,
		Payload:         payload,
		CreatedAt:       resp.CreatedAt,
	})
	if err != nil {
		t.log.Error("failed to save assessment",
			zap.String("taxpayerId", assessment.TaxpayerID),
			zap.Error(err))
		return t.internalError(c)
	}

	t.log.Info("assessment created",
		zap.String("assessmentId", resp.AssessmentID),
		zap.String("taxpayerId", assessment.TaxpayerID),
		zap.String("grade", assessment.ComplianceGrade))

	return c.JSON(http.StatusCreated, resp)
}

func (t *TaxHandler) GetAssessment(c echo.Context) error {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid assessment id",
		})
	}

	a, err := t.db.FindAssessment(c.Request().Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, ResponseMsg{
			Message: "Assessment not found",
		})
	}
	if err != nil {
		t.log.Error("failed to find assessment", zap.String("assessmentId", id), zap.Error(err))
		return t.internalError(c)
	}

	return c.JSONBlob(http.StatusOK, a.Payload)
}
