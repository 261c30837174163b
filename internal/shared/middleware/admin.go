package middleware

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

// LibrarianMiddleware checks if the principal has the librarian role.
// Must run after AuthMiddleware
func LibrarianMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if !p.IsLibrarian() {
			response.Forbidden(c, "Access denied: librarian role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
