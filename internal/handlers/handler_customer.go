package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quayside/bankledger/internal/core/domain"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/dto"
	"github.com/quayside/bankledger/internal/middleware"
)

// customerHandler handles HTTP requests for the customer aggregate and
// account lifecycle.
type customerHandler struct {
	customerSvc portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerSvc portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerSvc: customerSvc}
}

// registerCustomerRoutes registers customer aggregate routes.
func registerCustomerRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, customerSvc portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerSvc)

	admin.POST("/customers", h.register)

	customers := rg.Group("/customers/:username")
	customers.Use(h.requireSelfOrAdministrator)
	{
		customers.GET("", h.load)
		customers.GET("/total-funds", h.totalFunds)
		customers.GET("/balances/:accountType", h.balanceOf)
		customers.POST("/accounts", h.openAccount)
		customers.DELETE("/accounts/:accountType", h.closeAccount)
	}
}

// requireSelfOrAdministrator restricts customer-aggregate routes to the
// customer itself or an administrator.
func (h *customerHandler) requireSelfOrAdministrator(c *gin.Context) {
	username := c.Param("username")
	actingUser, ok := middleware.GetActingUserFromCtx(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing acting user"})
		return
	}
	if actingUser == username {
		c.Next()
		return
	}
	if role, ok := middleware.GetActingRole(c); ok && role == domain.RoleAdministrator {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
}

func (h *customerHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register customer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer := domain.Customer{
		Username:    req.Username,
		Name:        req.Name,
		Role:        req.Role,
		CreditScore: req.CreditScore,
	}
	if err := h.customerSvc.Register(c.Request.Context(), customer); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Customer registered", slog.String("username", req.Username))
	c.Status(http.StatusCreated)
}

func (h *customerHandler) load(c *gin.Context) {
	view, err := h.customerSvc.Load(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(view))
}

func (h *customerHandler) totalFunds(c *gin.Context) {
	username := c.Param("username")

	total, err := h.customerSvc.TotalFunds(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalFundsResponse{Username: username, TotalFunds: total})
}

func (h *customerHandler) balanceOf(c *gin.Context) {
	username := c.Param("username")
	accountType := c.Param("accountType")

	balance, exists, err := h.customerSvc.BalanceOf(c.Request.Context(), username, accountType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountType: accountType, Balance: balance, Exists: exists})
}

func (h *customerHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username := c.Param("username")

	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for open account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opened, err := h.customerSvc.OpenAccount(c.Request.Context(), username, req.AccountType, req.InitialDeposit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !opened {
		c.JSON(http.StatusConflict, gin.H{"opened": false})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opened": true})
}

func (h *customerHandler) closeAccount(c *gin.Context) {
	username := c.Param("username")
	accountType := c.Param("accountType")

	closed, err := h.customerSvc.CloseAccount(c.Request.Context(), username, accountType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !closed {
		c.JSON(http.StatusNotFound, gin.H{"closed": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true})
}
