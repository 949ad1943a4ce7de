package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"conference-webapp/errors"
	"conference-webapp/model"
)

const IdentityKey = "identity"

// Authorize validates an HS256 bearer token and stores it under IdentityKey.
func Authorize(sign string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(sign),
		ErrorHandler: jwtError,
		ContextKey:   IdentityKey,
	})
}

// RequireAdmin must run after Authorize.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdminRole(c) {
			return errors.RaisePermissionsError(c, "only admin can perform this operation")
		}
		return c.Next()
	}
}

func isAdminRole(c *fiber.Ctx) bool {
	token, ok := c.Locals(IdentityKey).(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == model.AdminRole
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return errors.RaiseBadRequestError(c, "Missing or malformed JWT")
	}
	return errors.RaisePermissionsError(c, "Invalid or expired JWT")
}
