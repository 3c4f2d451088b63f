package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
)

// reportingHandler serves administrator aggregate statistics.
type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingSvc portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingSvc: reportingSvc}
}

// registerReportingRoutes registers administrator-only reporting routes.
func registerReportingRoutes(admin *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingSvc)

	reports := admin.Group("/reports")
	{
		reports.GET("/summary", h.summary)
		reports.GET("/customers/:username/loan-debt", h.customerLoanDebt)
	}
}

func (h *reportingHandler) summary(c *gin.Context) {
	summary, err := h.reportingSvc.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) customerLoanDebt(c *gin.Context) {
	username := c.Param("username")

	debt, err := h.reportingSvc.CustomerLoanDebt(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "loanDebt": debt})
}
