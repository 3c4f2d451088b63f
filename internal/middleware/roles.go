package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
)

// ActingUserHeader carries the caller identity established by the external
// login/session collaborator. Authentication itself happens outside this
// service; the ledger core only resolves the identity to a role.
const ActingUserHeader = "X-Acting-User"

// ResolveActingUser loads the customer row named by the acting-user header
// and stores the username in the request context. Requests without a
// resolvable identity are rejected.
func ResolveActingUser(customers portsrepo.CustomerReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader(ActingUserHeader)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing acting user"})
			return
		}

		customer, err := customers.FindCustomerByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown acting user"})
				return
			}
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to resolve acting user", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve acting user"})
			return
		}

		c.Set(roleContextKey, customer.Role)
		c.Request = c.Request.WithContext(withActingUser(c.Request.Context(), customer.Username))
		c.Next()
	}
}

const roleContextKey = "actingRole"

// GetActingRole returns the resolved role of the acting user.
func GetActingRole(c *gin.Context) (domain.Role, bool) {
	v, exists := c.Get(roleContextKey)
	if !exists {
		return "", false
	}
	role, ok := v.(domain.Role)
	return role, ok
}

// RequireRole gates a route group to callers holding the given role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(roleContextKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing acting user"})
			return
		}
		if v.(domain.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
