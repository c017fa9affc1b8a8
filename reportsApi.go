package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/hoaworks/portal_backend/config"
	"bitbucket.org/hoaworks/portal_backend/finance"
	"bitbucket.org/hoaworks/portal_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// filterFromQuery builds the analysis scope from query parameters. The
// fiscal year defaults to the current calendar year and the month range to
// the whole year.
func filterFromQuery(c *gin.Context) (finance.FilterSelection, error) {
	filter := finance.FilterSelection{
		FiscalYear: time.Now().Year(),
		StartMonth: finance.MonthAll,
		EndMonth:   finance.MonthAll,
	}
	if v := c.Query("fiscal_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.FiscalYear = year
	}
	if v := c.Query("account_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.AccountId = id
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.CategoryId = id
	}
	filter.Vendor = c.Query("vendor")
	if v := c.Query("start_month"); v != "" {
		filter.StartMonth = v
	}
	if v := c.Query("end_month"); v != "" {
		filter.EndMonth = v
	}
	return filter, filter.Validate()
}

func forecastMonthsFromQuery(c *gin.Context) int {
	if v := c.Query("months_ahead"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 36 {
			return n
		}
	}
	return finance.DefaultForecastMonths
}

// badFilterBody flattens validator errors into a field map; anything else
// goes out as a plain message.
func badFilterBody(err error) gin.H {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return gin.H{"error": "invalid filter", "fields": utils.ProcessValidationErrors(validationErrors)}
	}
	return gin.H{"error": err.Error()}
}

// loadSnapshot wraps finance.LoadSnapshot with the handler-side error
// convention: bad filters are the caller's fault, fetch failures are ours.
func loadSnapshot(c *gin.Context, funcName string) (finance.Snapshot, finance.FilterSelection, bool) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, badFilterBody(err))
		return finance.Snapshot{}, filter, false
	}

	ctx, span := tracer.Start(c.Request.Context(), funcName)
	defer span.End()

	snap, err := finance.LoadSnapshot(ctx, filter)
	if err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "reportsApi.go", funcName, "LoadSnapshot", filter, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
		return finance.Snapshot{}, filter, false
	}
	return snap, filter, true
}

func varianceReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "varianceReportHandler")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, finance.BuildVarianceReport(snap, filter))
	}
}

func cashFlowReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "cashFlowReportHandler")
		if !ok {
			return
		}
		report := finance.ComputeBoardReport(snap, filter, forecastMonthsFromQuery(c))
		c.JSON(http.StatusOK, report.CashFlow)
	}
}

func multiYearReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "multiYearReportHandler")
		if !ok {
			return
		}
		comparison := finance.CompareYears(snap.Categories, filter.FiscalYear)
		c.JSON(http.StatusOK, gin.H{
			"comparison": comparison,
			"trend":      finance.AnalyzeTrend(comparison),
		})
	}
}

func healthReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "healthReportHandler")
		if !ok {
			return
		}
		report := finance.ComputeBoardReport(snap, filter, forecastMonthsFromQuery(c))
		c.JSON(http.StatusOK, report.Health)
	}
}

func complianceReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "complianceReportHandler")
		if !ok {
			return
		}
		report := finance.ComputeBoardReport(snap, filter, forecastMonthsFromQuery(c))
		c.JSON(http.StatusOK, report.Compliance)
	}
}

func boardPacketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "boardPacketHandler")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, finance.ComputeBoardReport(snap, filter, forecastMonthsFromQuery(c)))
	}
}

func exportBoardPacketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, filter, ok := loadSnapshot(c, "exportBoardPacketHandler")
		if !ok {
			return
		}
		report := finance.ComputeBoardReport(snap, filter, forecastMonthsFromQuery(c))

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=board-packet.xlsx")
		if err := finance.WriteBoardPacket(report, c.Writer); err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "reportsApi.go", "exportBoardPacketHandler", "WriteBoardPacket", filter, err)
			c.Status(http.StatusInternalServerError)
		}
	}
}
