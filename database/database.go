package database

import (
	"context"
	"errors"

	"conference-webapp/model"
)

var ErrNotFound = errors.New("document not found")

// IsNotFound reports whether err means the identifier resolved to nothing.
// Every other non-nil error is a store fault.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type ConferenceStore interface {
	ListConferences(ctx context.Context) ([]model.Conference, error)
	CreateConference(ctx context.Context, in model.ConferenceInput) (model.Conference, error)
	UpdateConference(ctx context.Context, id model.ID, in model.ConferenceInput) (model.Conference, error)
	DeleteConference(ctx context.Context, id model.ID) error
	AppendFeedback(ctx context.Context, id model.ID, feedback string) (model.Conference, error)
	GetConferencesByIDs(ctx context.Context, ids []model.ID) ([]model.Conference, error)
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	AppendUserConference(ctx context.Context, userId model.ID, conferenceId model.ID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// DeleteUser succeeds when no user has the identifier.
	DeleteUser(ctx context.Context, id model.ID) error
}

type AdminStore interface {
	FindAdmin(ctx context.Context, login string) (model.Admin, error)
}

type Store interface {
	ConferenceStore
	UserStore
	AdminStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
