package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type DB struct {
	sqlDB *sql.DB
}

func NewDB(dbURL string) (*DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func (db *DB) GetSQLDB() *sql.DB {
	return db.sqlDB
}

func (db *DB) Close() error {
	return db.sqlDB.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS tax_brackets (
	table_name  TEXT    NOT NULL,
	position    INT     NOT NULL,
	lower_bound NUMERIC NOT NULL,
	upper_bound NUMERIC,
	rate        NUMERIC NOT NULL,
	PRIMARY KEY (table_name, position)
);

CREATE TABLE IF NOT EXISTS penalty_rates (
	tax_type            TEXT PRIMARY KEY,
	late_filing_rate    NUMERIC NOT NULL,
	daily_interest_rate NUMERIC NOT NULL
);

CREATE TABLE IF NOT EXISTS assessments (
	id               UUID PRIMARY KEY,
	taxpayer_id      TEXT        NOT NULL,
	tax_year         INT         NOT NULL,
	grand_total      NUMERIC     NOT NULL,
	compliance_score INT         NOT NULL,
	compliance_grade TEXT        NOT NULL,
	payload          JSONB       NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.GetSQLDB().ExecContext(ctx, schema)
	return err
}

// FindBrackets returns the rows of one bracket table in ascending order.
// An empty result means the table has not been overridden.
func (db *DB) FindBrackets(ctx context.Context, tableName string) ([]Bracket, error) {
	var results []Bracket

	rows, err := db.GetSQLDB().QueryContext(
		ctx,
		`
			SELECT lower_bound, upper_bound, rate FROM tax_brackets
			WHERE table_name = $1
			ORDER BY position
		`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b Bracket

		err = rows.Scan(&b.LowerBound, &b.UpperBound, &b.Rate)
		if err != nil {
			return nil, err
		}

		results = append(results, b)
	}

	return results, rows.Err()
}

func (db *DB) FindPenaltyRates(ctx context.Context) ([]PenaltyRate, error) {
	var results []PenaltyRate

	rows, err := db.GetSQLDB().QueryContext(
		ctx,
		`
		SELECT tax_type, late_filing_rate, daily_interest_rate FROM penalty_rates
		`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r PenaltyRate

		err = rows.Scan(&r.TaxType, &r.LateFilingRate, &r.DailyInterestRate)
		if err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

func (db *DB) UpsertPenaltyRate(ctx context.Context, rate PenaltyRate) (PenaltyRate, error) {
	var saved PenaltyRate

	err := db.GetSQLDB().QueryRowContext(
		ctx,
		`
		INSERT INTO penalty_rates (tax_type, late_filing_rate, daily_interest_rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (tax_type) DO UPDATE
		SET late_filing_rate = EXCLUDED.late_filing_rate,
			daily_interest_rate = EXCLUDED.daily_interest_rate
		RETURNING tax_type, late_filing_rate, daily_interest_rate
		`, rate.TaxType, rate.LateFilingRate, rate.DailyInterestRate,
	).Scan(&saved.TaxType, &saved.LateFilingRate, &saved.DailyInterestRate)
	if err != nil {
		return PenaltyRate{}, err
	}

	return saved, nil
}

func (db *DB) SaveAssessment(ctx context.Context, a Assessment) error {
	_, err := db.GetSQLDB().ExecContext(
		ctx,
		`
		INSERT INTO assessments (id, taxpayer_id, tax_year, grand_total, compliance_score, compliance_grade, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.TaxpayerID, a.TaxYear, a.GrandTotal, a.ComplianceScore, a.ComplianceGrade, []byte(a.Payload), a.CreatedAt)

	return err
}

// FindAssessment returns sql.ErrNoRows when no assessment has the id.
func (db *DB) FindAssessment(ctx context.Context, id string) (Assessment, error) {
	var (
		a       Assessment
		payload []byte
	)

	err := db.GetSQLDB().QueryRowContext(
		ctx,
		`
		SELECT id, taxpayer_id, tax_year, grand_total, compliance_score, compliance_grade, payload, created_at
		FROM assessments WHERE id = $1
		`, id,
	).Scan(&a.ID, &a.TaxpayerID, &a.TaxYear, &a.GrandTotal, &a.ComplianceScore, &a.ComplianceGrade, &payload, &a.CreatedAt)
	if err != nil {
		return Assessment{}, err
	}

	a.Payload = payload

	return a, nil
}

type Bracket struct {
	LowerBound decimal.Decimal     `db:"lower_bound"`
	UpperBound decimal.NullDecimal `db:"upper_bound"`
	Rate       decimal.Decimal     `db:"rate"`
}

type PenaltyRate struct {
	TaxType           string          `db:"tax_type"`
	LateFilingRate    decimal.Decimal `db:"late_filing_rate"`
	DailyInterestRate decimal.Decimal `db:"daily_interest_rate"`
}

type Assessment struct {
	ID              string          `db:"id"`
	TaxpayerID      string          `db:"taxpayer_id"`
	TaxYear         int             `db:"tax_year"`
	GrandTotal      decimal.Decimal `db:"grand_total"`
	ComplianceScore int             `db:"compliance_score"`
	ComplianceGrade string          `db:"compliance_grade"`
	Payload         json.RawMessage `db:"payload"`
	CreatedAt       time.Time       `db:"created_at"`
}
