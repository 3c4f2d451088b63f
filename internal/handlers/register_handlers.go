package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	"github.com/quayside/bankledger/internal/core/services"
	"github.com/quayside/bankledger/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	container *services.ServicesContainer,
	customers portsrepo.CustomerReader,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, container, customers)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Every route requires a resolved acting user;
// the admin subgroup additionally requires the administrator role.
func setupAPIV1Routes(
	r *gin.Engine,
	container *services.ServicesContainer,
	customers portsrepo.CustomerReader,
) {
	v1 := r.Group("/api/v1", middleware.ResolveActingUser(customers))
	admin := v1.Group("", middleware.RequireRole(domain.RoleAdministrator))

	RegisterTransactionRoutes(v1, container.Transaction, container.Account)
	registerCustomerRoutes(v1, admin, container.Customer)
	registerLoanRoutes(v1, admin, container.Loan)
	registerReportingRoutes(admin, container.Reporting)
}
