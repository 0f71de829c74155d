// file: internals/helpers/request_identity.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken ambil user_id dari c.Locals("user_id").
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetOptionalUserID: versi longgar untuk route fill yang boleh anonim.
// nil = tidak login.
func GetOptionalUserID(c *fiber.Ctx) *uuid.UUID {
	v := c.Locals("user_id")
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return nil
		}
		id := t
		return &id
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil {
			return &id
		}
	}
	return nil
}

// GetClientIP: entri pertama X-Forwarded-For, fallback alamat peer.
func GetClientIP(c *fiber.Ctx) string {
	xff := strings.TrimSpace(c.Get("X-Forwarded-For"))
	if xff != "" {
		if comma := strings.IndexByte(xff, ','); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return xff
	}
	return c.IP()
}
