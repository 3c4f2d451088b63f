package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/dto"
	"github.com/quayside/bankledger/internal/middleware"
)

// loanHandler handles loan evaluation and disbursement requests.
type loanHandler struct {
	loanSvc portssvc.LoanSvcFacade
}

func newLoanHandler(loanSvc portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanSvc: loanSvc}
}

// registerLoanRoutes registers loan routes. Evaluation is open to any
// resolved caller; disbursement is an administrator action, matching the
// original flow where a clerk grants the loan.
func registerLoanRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, loanSvc portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanSvc)

	rg.POST("/accounts/:accountID/loan-evaluations", h.evaluate)
	admin.POST("/accounts/:accountID/loans", h.disburse)
}

func (h *loanHandler) evaluate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for loan evaluation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approved, err := h.loanSvc.Evaluate(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoanEvaluationResponse{AccountID: accountID, Approved: approved})
}

func (h *loanHandler) disburse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for loan disbursement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	disbursement, err := h.loanSvc.Disburse(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanDisbursementResponse(disbursement))
}
