package tax

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidBracketTable    = errors.New("invalid bracket table")
	ErrUnknownCategory        = errors.New("unknown product category")
	ErrUnknownWithholdingType = errors.New("unknown withholding tax type")
)

// Stage names a sub-calculation of the comprehensive assessment.
type Stage string

const (
	StageIncomeTax   Stage = "income_tax"
	StageGST         Stage = "gst"
	StagePayrollTax  Stage = "payroll_tax"
	StageExciseDuty  Stage = "excise_duty"
	StageWithholding Stage = "withholding_tax"
)

// AggregationError reports which sub-calculation failed an assessment.
type AggregationError struct {
	Stage Stage
	Err   error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("assessment failed at %s: %v", e.Stage, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
