package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/services"
	"github.com/ed9408/minerva-api/internal/utils"
)

const CurrentUserKey = "auth.current_user"

type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate verifies the bearer token and resolves its subject to a
// stored user. Missing token, bad token and unresolvable subject all
// terminate the request with the same 401.
func Authenticate(tokens *services.TokenManager, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(c, utils.ErrInvalidCredentials())
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.RespondError(c, utils.ErrInvalidCredentials())
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			utils.RespondError(c, utils.ErrInvalidCredentials())
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireAdmin runs after Authenticate and rejects non-admin principals.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, utils.ErrInvalidCredentials())
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			utils.RespondError(c, utils.ErrInsufficientRole())
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
