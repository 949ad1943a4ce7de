// Package mockstore provides a testify mock of database.Store for
// exercising handler failure paths.
package mockstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conference-webapp/model"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) ListConferences(ctx context.Context) ([]model.Conference, error) {
	args := m.Called(ctx)
	conferences, _ := args.Get(0).([]model.Conference)
	return conferences, args.Error(1)
}

func (m *StoreMock) CreateConference(ctx context.Context, in model.ConferenceInput) (model.Conference, error) {
	args := m.Called(ctx, in)
	conf, _ := args.Get(0).(model.Conference)
	return conf, args.Error(1)
}

func (m *StoreMock) UpdateConference(ctx context.Context, id model.ID, in model.ConferenceInput) (model.Conference, error) {
	args := m.Called(ctx, id, in)
	conf, _ := args.Get(0).(model.Conference)
	return conf, args.Error(1)
}

func (m *StoreMock) DeleteConference(ctx context.Context, id model.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreMock) AppendFeedback(ctx context.Context, id model.ID, feedback string) (model.Conference, error) {
	args := m.Called(ctx, id, feedback)
	conf, _ := args.Get(0).(model.Conference)
	return conf, args.Error(1)
}

func (m *StoreMock) GetConferencesByIDs(ctx context.Context, ids []model.ID) ([]model.Conference, error) {
	args := m.Called(ctx, ids)
	conferences, _ := args.Get(0).([]model.Conference)
	return conferences, args.Error(1)
}

func (m *StoreMock) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(model.User)
	return user, args.Error(1)
}

func (m *StoreMock) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *StoreMock) AppendUserConference(ctx context.Context, userId model.ID, conferenceId model.ID) (model.User, error) {
	args := m.Called(ctx, userId, conferenceId)
	user, _ := args.Get(0).(model.User)
	return user, args.Error(1)
}

func (m *StoreMock) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *StoreMock) DeleteUser(ctx context.Context, id model.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreMock) FindAdmin(ctx context.Context, login string) (model.Admin, error) {
	args := m.Called(ctx, login)
	admin, _ := args.Get(0).(model.Admin)
	return admin, args.Error(1)
}

func (m *StoreMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StoreMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
