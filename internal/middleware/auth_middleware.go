package middleware

import (
	"log"
	"strings"

	"github.com/fadilmartias/neuraview/internal/service"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// Authenticate resolves the bearer token into a user id when one is present.
// Requests without a valid token continue anonymously.
func Authenticate(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := auth.ValidateToken(token)
		if err != nil {
			log.Printf("auth: rejected bearer token: %v", err)
			return c.Next()
		}
		c.Locals(userIDKey, claims.UserID())
		return c.Next()
	}
}

// RequireUser stops anonymous requests.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: usecase.MsgMustLogIn,
			})
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// Session is the auth state of the current request.
func Session(c *fiber.Ctx) usecase.UserSession {
	return usecase.UserSession{ID: UserID(c)}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
