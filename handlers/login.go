package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"conference-webapp/database"
	"conference-webapp/errors"
)

const tokenLifetime = time.Hour * 8

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

// Login exchanges admin credentials for a signed token carrying the
// account role.
func (h *Handler) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	creds := new(Credentials)
	if err := parseBody(c, creds); err != nil {
		return errors.RaiseBadRequestError(c, "Error on login request when parse credentials")
	}

	admin, getErr := h.store.FindAdmin(c.UserContext(), creds.Login)
	if database.IsNotFound(getErr) {
		return errors.RaisePermissionsError(c, "Invalid login or password")
	}
	if getErr != nil {
		h.storeFault("find admin", getErr, "login", creds.Login)
		return errors.RaiseInternalServerError(c, "Error on login request when comparing user data")
	}

	if !isPasswordHashCorrect(admin.HashedPassword, creds.Password) {
		return errors.RaisePermissionsError(c, "Invalid login or password")
	}

	if len(h.sign) == 0 {
		h.log.Error("login attempted without a signing key")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": admin.Login,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
		"role":     admin.Role,
	})

	t, err := token.SignedString(h.sign)
	if err != nil {
		h.log.Errorw("sign token", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}
