package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/dto"
	"github.com/quayside/bankledger/internal/middleware"
)

// transactionHandler handles HTTP requests for money movement.
type transactionHandler struct {
	engine     portssvc.TransactionSvcFacade
	accountSvc portssvc.AccountSvcFacade
}

func newTransactionHandler(engine portssvc.TransactionSvcFacade, accountSvc portssvc.AccountSvcFacade) *transactionHandler {
	return &transactionHandler{engine: engine, accountSvc: accountSvc}
}

// RegisterTransactionRoutes registers routes for account reads and movement.
func RegisterTransactionRoutes(rg *gin.RouterGroup, engine portssvc.TransactionSvcFacade, accountSvc portssvc.AccountSvcFacade) {
	h := newTransactionHandler(engine, accountSvc)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.getHistory)
		accounts.POST("/:accountID/withdrawals", h.withdraw)
		accounts.POST("/:accountID/deposits", h.deposit)
	}
	rg.POST("/transfers", h.transfer)
}

func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return 0, false
	}
	return id, true
}

func (h *transactionHandler) getAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *transactionHandler) getHistory(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	history, err := h.accountSvc.GetTransactionHistory(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionListResponse(history)})
}

func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newBalance, err := h.engine.Withdraw(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceMutationResponse{AccountID: accountID, NewBalance: newBalance})
}

func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newBalance, err := h.engine.Deposit(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceMutationResponse{AccountID: accountID, NewBalance: newBalance})
}

func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.engine.Transfer(c.Request.Context(), req.SenderAccountID, req.ReceiverAccountID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransferResponse{
		Send:    dto.ToTransactionResponse(&record.Send),
		Receive: dto.ToTransactionResponse(&record.Receive),
	})
}
