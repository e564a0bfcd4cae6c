package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/careerpilot/careerpilot/pkg/security/jwt"
)

// currentUser reads the subject the auth middleware stored in Locals.
func currentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	userIDStr, _ := c.Locals(jwt.LocalUserID).(string)
	id, err := uuid.Parse(userIDStr)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
