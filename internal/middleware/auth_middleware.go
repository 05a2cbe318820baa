package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/models"
	jwtPkg "github.com/satmoko/studio-backend/pkg/jwt"
)

func AuthMiddleware(tokens *jwtPkg.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		memberIDFloat, ok := claims["member_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid member ID in token"))
		}

		memberEmail, ok := claims["email"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid email in token"))
		}

		c.Locals("memberID", uint(memberIDFloat))
		c.Locals("memberEmail", memberEmail)

		return c.Next()
	}
}

// AdminMiddleware gates admin routes on the allow-list. It assumes
// AuthMiddleware already ran.
func AdminMiddleware(isAdmin func(email string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("memberEmail").(string)
		if !ok || !isAdmin(email) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// MemberEmail pulls the authenticated identity out of the request.
func MemberEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals("memberEmail").(string)
	return email, ok
}
