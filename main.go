package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnnaCarter465/salone-tax/config"
	"github.com/AnnaCarter465/salone-tax/database"
	"github.com/AnnaCarter465/salone-tax/handler"
	"github.com/AnnaCarter465/salone-tax/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("Cannot load configuration: ", err)
	}

	logr, err := logger.New(cfg.Production())
	if err != nil {
		log.Fatal("Cannot build logger: ", err)
	}
	defer func() { _ = logr.Sync() }()

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		logr.Fatal("cannot connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		logr.Fatal("cannot migrate database", zap.Error(err))
	}

	// Money is serialised as plain JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	vl := validator.New()
	taxHandler := handler.NewTaxHandler(vl, db, logr)
	adminHandler := handler.NewAdminHandler(vl, db, logr)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logr.Error("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logr.Info("request", fields...)
			return nil
		},
	}))

	e.GET("/", handler.Healthcheck)

	t := e.Group("/tax")
	t.POST("/income", taxHandler.CalculateIncomeTax)
	t.POST("/income/upload-csv", taxHandler.CalculateIncomeTaxWithCSV)
	t.POST("/gst", taxHandler.CalculateGST)
	t.POST("/payroll", taxHandler.CalculatePayrollTax)
	t.POST("/excise", taxHandler.CalculateExciseDuty)
	t.POST("/withholding", taxHandler.CalculateWithholdingTax)
	t.POST("/penalties", taxHandler.CalculatePenalties)
	t.POST("/assessments", taxHandler.CreateAssessment)
	t.GET("/assessments/:id", taxHandler.GetAssessment)

	a := e.Group("/admin")
	a.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		if subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1 {
			return true, nil
		}
		return false, nil
	}))
	a.PUT("/penalty-rates/:taxType", adminHandler.UpdatePenaltyRates)

	go func() {
		logr.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server stopped", zap.Error(err))
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	logr.Info("shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logr.Fatal("cannot shut down server", zap.Error(err))
	}
}
