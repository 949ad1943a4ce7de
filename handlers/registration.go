package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/thoas/go-funk"

	"conference-webapp/database"
	"conference-webapp/errors"
	"conference-webapp/model"
)

// Register adds a conference to the user with the given email, creating the
// user on first registration. The name of an existing user is not changed
// and repeated registrations for one conference are all kept.
func (h *Handler) Register(c *fiber.Ctx) error {
	input := new(model.RegisterInput)
	if err := parseBody(c, input); err != nil {
		return h.bodyFault(c, err, "register user", "Error registering user")
	}

	user, err := h.register(c.UserContext(), *input)
	if err != nil {
		h.storeFault("register user", err, "email", input.Email, "conferenceId", input.ConferenceId)
		return errors.RaiseInternalServerError(c, "Error registering user")
	}

	return c.JSON(user)
}

func (h *Handler) register(ctx context.Context, input model.RegisterInput) (model.User, error) {
	confId := model.ID(input.ConferenceId)

	user, err := h.store.FindUserByEmail(ctx, input.Email)
	if database.IsNotFound(err) {
		return h.store.CreateUser(ctx, model.User{
			Name:        input.Name,
			Email:       input.Email,
			Conferences: []model.ID{confId},
		})
	}
	if err != nil {
		return model.User{}, err
	}

	return h.store.AppendUserConference(ctx, user.Id, confId)
}

func (h *Handler) GetRegistrations(c *fiber.Ctx) error {
	registrations, err := h.registrations(c.UserContext())
	if err != nil {
		h.storeFault("list registrations", err)
		return errors.RaiseInternalServerError(c, "Error fetching registrations")
	}

	return c.JSON(registrations)
}

// registrations joins users with the conferences they reference. All
// referenced conferences are fetched in one batch; references to deleted
// conferences are left out.
func (h *Handler) registrations(ctx context.Context) ([]model.Registration, error) {
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, user := range users {
		for _, confId := range user.Conferences {
			refs = append(refs, string(confId))
		}
	}
	refs = funk.UniqString(refs)

	ids := make([]model.ID, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, model.ID(ref))
	}
	conferences, err := h.store.GetConferencesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	conferencesById := make(map[model.ID]model.Conference, len(conferences))
	for _, conf := range conferences {
		conferencesById[conf.Id] = conf
	}

	registrations := make([]model.Registration, 0, len(users))
	for _, user := range users {
		registration := model.Registration{
			Id:          user.Id,
			Name:        user.Name,
			Email:       user.Email,
			Conferences: make([]model.Conference, 0, len(user.Conferences)),
		}
		for _, confId := range user.Conferences {
			if conf, ok := conferencesById[confId]; ok {
				registration.Conferences = append(registration.Conferences, conf)
			}
		}
		registrations = append(registrations, registration)
	}

	return registrations, nil
}

// DeleteRegistration removes a user. Unknown identifiers are not an error.
func (h *Handler) DeleteRegistration(c *fiber.Ctx) error {
	userId := model.ID(c.Params("id"))
	if err := h.store.DeleteUser(c.UserContext(), userId); err != nil {
		h.storeFault("delete registration", err, "id", userId)
		return errors.RaiseInternalServerError(c, "Error deleting registration")
	}

	return errors.Message(c, "Registration deleted")
}
