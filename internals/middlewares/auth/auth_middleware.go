// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"surveyku_backend/internals/configs"
	userModel "surveyku_backend/internals/features/users/model"
)

// AuthMiddleware: wajib login. user_id valid disimpan di c.Locals("user_id").
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := parseClaims(tokenString)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		return c.Next()
	}
}

// OptionalAuthMiddleware: untuk route fill yang boleh anonim.
// Token valid → user_id masuk Locals; tanpa token / token rusak → lanjut
// sebagai anonim (keputusan boleh/tidaknya anonim ada di service).
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims, err := parseClaims(tokenString)
		if err != nil {
			return c.Next()
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}
		if err := ensureUserActive(db, userID); err != nil {
			return c.Next()
		}
		c.Locals("user_id", userID.String())
		return c.Next()
	}
}

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	secretKey := configs.JWTSecret
	if secretKey == "" {
		return nil, fmt.Errorf("missing JWT secret")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}
	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}
	if time.Now().Add(-skew).Unix() > expUnix {
		return fmt.Errorf("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"user_id", "sub", "id"} {
		if raw, ok := claims[key]; ok {
			if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
				return uuid.Parse(strings.TrimSpace(s))
			}
		}
	}
	return uuid.Nil, fmt.Errorf("no user id claim")
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var u userModel.UserModel
	if err := db.Select("user_id", "user_is_active").
		Where("user_id = ?", userID).
		First(&u).Error; err != nil {
		return err
	}
	if !u.UserIsActive {
		return fmt.Errorf("user inactive")
	}
	return nil
}
