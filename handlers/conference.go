package handlers

import (
	"github.com/gofiber/fiber/v2"

	"conference-webapp/database"
	"conference-webapp/errors"
	"conference-webapp/model"
)

const conferenceNotFound = "Conference not found"

func (h *Handler) GetConferences(c *fiber.Ctx) error {
	conferences, dbErr := h.store.ListConferences(c.UserContext())
	if dbErr != nil {
		h.storeFault("list conferences", dbErr)
		return errors.RaiseInternalServerError(c, "Error fetching conferences")
	}

	return c.JSON(conferences)
}

// CreateNewConference serves both the public and the admin create route.
func (h *Handler) CreateNewConference(c *fiber.Ctx) error {
	newConf := new(model.ConferenceInput)
	if err := parseBody(c, newConf); err != nil {
		return h.bodyFault(c, err, "create conference", "Error creating conference")
	}

	conf, dbErr := h.store.CreateConference(c.UserContext(), *newConf)
	if dbErr != nil {
		h.storeFault("create conference", dbErr)
		return errors.RaiseInternalServerError(c, "Error creating conference")
	}

	return c.JSON(conf)
}

func (h *Handler) UpdateConference(c *fiber.Ctx) error {
	updatedConf := new(model.ConferenceInput)
	if err := parseBody(c, updatedConf); err != nil {
		return h.bodyFault(c, err, "update conference", "Error updating conference")
	}

	confId := model.ID(c.Params("id"))
	conf, dbErr := h.store.UpdateConference(c.UserContext(), confId, *updatedConf)
	if database.IsNotFound(dbErr) {
		return errors.RaiseNotFoundError(c, conferenceNotFound)
	}
	if dbErr != nil {
		h.storeFault("update conference", dbErr, "id", confId)
		return errors.RaiseInternalServerError(c, "Error updating conference")
	}

	return c.JSON(conf)
}

func (h *Handler) DeleteConference(c *fiber.Ctx) error {
	confId := model.ID(c.Params("id"))
	deleteErr := h.store.DeleteConference(c.UserContext(), confId)
	if database.IsNotFound(deleteErr) {
		return errors.RaiseNotFoundError(c, conferenceNotFound)
	}
	if deleteErr != nil {
		h.storeFault("delete conference", deleteErr, "id", confId)
		return errors.RaiseInternalServerError(c, "Error deleting conference")
	}

	return errors.Message(c, "Conference deleted")
}

// SubmitFeedback appends one comment to a conference. Repeated comments
// are stored again. A request naming no conference finds none.
func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	input := new(model.FeedbackInput)
	if err := parseBody(c, input); err != nil {
		return h.bodyFault(c, err, "submit feedback", "Error submitting feedback")
	}
	if input.ConferenceId == "" {
		return errors.RaiseNotFoundError(c, conferenceNotFound)
	}

	confId := model.ID(input.ConferenceId)
	conf, dbErr := h.store.AppendFeedback(c.UserContext(), confId, input.Feedback)
	if database.IsNotFound(dbErr) {
		return errors.RaiseNotFoundError(c, conferenceNotFound)
	}
	if dbErr != nil {
		h.storeFault("submit feedback", dbErr, "conferenceId", confId)
		return errors.RaiseInternalServerError(c, "Error submitting feedback")
	}

	return c.JSON(conf)
}
