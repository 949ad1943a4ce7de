package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conference-webapp/database"
	"conference-webapp/errors"
	"conference-webapp/model"
)

type Handler struct {
	store database.Store
	log   *zap.SugaredLogger
	sign  []byte
}

// New returns request handlers bound to store. sign is the JWT signing key
// used by Login and may be empty when admin authentication is disabled.
func New(store database.Store, log *zap.SugaredLogger, sign string) *Handler {
	return &Handler{
		store: store,
		log:   log,
		sign:  []byte(sign),
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		h.log.Warnw("store ping failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// parseBody decodes a JSON request body into out. An empty body or one sent
// with another content type leaves out zero-valued. Malformed JSON is
// returned as is for the app error handler.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 || !isJSON(c) {
		return nil
	}
	return c.BodyParser(out)
}

func isJSON(c *fiber.Ctx) bool {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON)
}

// bodyFault answers a field that cannot be stored like any other store
// fault and passes every other decoding error on.
func (h *Handler) bodyFault(c *fiber.Ctx, err error, op string, message string) error {
	if !model.IsCastError(err) {
		return err
	}
	h.storeFault(op, err)
	return errors.RaiseInternalServerError(c, message)
}

func (h *Handler) storeFault(op string, err error, keysAndValues ...interface{}) {
	h.log.Errorw(op, append(keysAndValues, "error", err)...)
}
