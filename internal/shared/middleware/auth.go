package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared"
	"library-backend/internal/shared/principal"
	"library-backend/internal/shared/response"
	"library-backend/pkg/jwt"
)

const principalKey = "principal"

// AuthMiddleware - Middleware xác thực JWT bearer token
// Principal được gắn vào cả gin context và request context
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("token rejected")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		memberID, err := uuid.Parse(claims.MemberID)
		role := shared.Role(claims.Role)
		if err != nil || !role.IsValid() {
			response.Unauthorized(c, "invalid token claims")
			c.Abort()
			return
		}

		// 4. Gắn principal vào context
		p := principal.Principal{
			MemberID: memberID,
			Username: claims.Username,
			Role:     role,
		}
		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(principal.WithPrincipal(c.Request.Context(), p))

		c.Next()
	}
}

// GetPrincipal đọc principal đã được AuthMiddleware set
func GetPrincipal(c *gin.Context) (principal.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return principal.Principal{}, false
	}
	p, ok := value.(principal.Principal)
	return p, ok
}
