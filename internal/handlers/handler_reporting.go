package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the read-only reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	location         *time.Location
	now              func() time.Time
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc, loc *time.Location) {
	h := &reportingHandler{reportingService: reportingService, location: loc, now: time.Now}

	reports := rg.Group("/reports", adminOnly)
	{
		reports.GET("/daily", h.getDailyTotals)
		reports.GET("/monthly", h.getMonthlyTotals)
		reports.GET("/summary", h.getSummary)
		reports.GET("/statement/:accountID", h.getStatement)
		reports.GET("/balance/:accountID", h.getBalance)
	}
}

// localDay reinterprets a date bound by gin (always UTC midnight) as midnight in
// the reporting location. The zero value means today.
func (h *reportingHandler) localDay(t time.Time) time.Time {
	if t.IsZero() {
		return h.now().In(h.location)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.location)
}

// getDailyTotals godoc
// @Summary Charges and credits for one day
// @Tags reports
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)" default(today)
// @Success 200 {object} domain.MovementTotals
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *reportingHandler) getDailyTotals(c *gin.Context) {
	var params dto.DayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	totals, err := h.reportingService.DailyTotals(c.Request.Context(), h.localDay(params.Date))
	if err != nil {
		respondServiceError(c, err, "compute daily totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// getMonthlyTotals godoc
// @Summary Charges and credits for one calendar month
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.MovementTotals
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyTotals(c *gin.Context) {
	var params dto.MonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	totals, err := h.reportingService.MonthlyTotals(c.Request.Context(), params.Year, time.Month(params.Month))
	if err != nil {
		respondServiceError(c, err, "compute monthly totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// getSummary godoc
// @Summary Dashboard totals for a day and its month
// @Tags reports
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)" default(today)
// @Success 200 {object} domain.LedgerSummary
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	var params dto.DayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	summary, err := h.reportingService.Summary(c.Request.Context(), h.localDay(params.Date))
	if err != nil {
		respondServiceError(c, err, "compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getStatement godoc
// @Summary Account statement
// @Description Opening balance, movements in range and closing balance. Both dates are inclusive.
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param from query string true "From (YYYY-MM-DD)"
// @Param to query string true "To (YYYY-MM-DD)"
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} ErrorResponse "Invalid range"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /reports/statement/{accountID} [get]
func (h *reportingHandler) getStatement(c *gin.Context) {
	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	statement, err := h.reportingService.Statement(c.Request.Context(), c.Param("accountID"), h.localDay(params.From), h.localDay(params.To))
	if err != nil {
		respondServiceError(c, err, "build statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getBalance godoc
// @Summary Current balance of an account
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /reports/balance/{accountID} [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	accountID := c.Param("accountID")
	balance, err := h.reportingService.CurrentBalance(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balance: balance})
}
