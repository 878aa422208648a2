package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminJwtMiddleware guards the operator routes. Tokens are issued out of
// band (this service is single-operator); the middleware verifies the
// bearer token and, when an operator id is configured, requires the token
// subject to match it.
func AdminJwtMiddleware(adminUserID string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		userID, _ := claims["user_id"].(string)
		if adminUserID != "" && userID != adminUserID {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Operator access required"})
		}

		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}
