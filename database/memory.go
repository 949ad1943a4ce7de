package database

import (
	"context"
	"fmt"
	"sync"

	"conference-webapp/model"
)

// MemoryStore is an in-process Store with the same semantics as MongoStore.
// Records are kept in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	conferences []model.Conference
	users       []model.User
	admins      []model.Admin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddAdmin seeds an operator account.
func (s *MemoryStore) AddAdmin(admin model.Admin) model.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin.Id == "" {
		admin.Id = model.NewID()
	}
	s.admins = append(s.admins, admin)
	return admin
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) ListConferences(ctx context.Context) ([]model.Conference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conferences := make([]model.Conference, 0, len(s.conferences))
	for _, conf := range s.conferences {
		conferences = append(conferences, copyConference(conf))
	}
	return conferences, nil
}

func (s *MemoryStore) CreateConference(ctx context.Context, in model.ConferenceInput) (model.Conference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conf := model.Conference{
		Id:       model.NewID(),
		Name:     in.Name,
		Date:     in.Date,
		Schedule: in.Schedule,
		Feedback: []string{},
	}
	s.conferences = append(s.conferences, conf)
	return copyConference(conf), nil
}

func (s *MemoryStore) UpdateConference(ctx context.Context, id model.ID, in model.ConferenceInput) (model.Conference, error) {
	if _, err := id.ObjectID(); err != nil {
		return model.Conference{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	confIndex := s.conferenceIndex(id)
	if confIndex == -1 {
		return model.Conference{}, fmt.Errorf("conference %v: %w", id, ErrNotFound)
	}
	conf := &s.conferences[confIndex]
	conf.Name = in.Name
	conf.Date = in.Date
	conf.Schedule = in.Schedule
	return copyConference(*conf), nil
}

func (s *MemoryStore) AppendFeedback(ctx context.Context, id model.ID, feedback string) (model.Conference, error) {
	if _, err := id.ObjectID(); err != nil {
		return model.Conference{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	confIndex := s.conferenceIndex(id)
	if confIndex == -1 {
		return model.Conference{}, fmt.Errorf("conference %v: %w", id, ErrNotFound)
	}
	conf := &s.conferences[confIndex]
	conf.Feedback = append(conf.Feedback, feedback)
	return copyConference(*conf), nil
}

func (s *MemoryStore) DeleteConference(ctx context.Context, id model.ID) error {
	if _, err := id.ObjectID(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	confIndex := s.conferenceIndex(id)
	if confIndex == -1 {
		return fmt.Errorf("conference %v: %w", id, ErrNotFound)
	}
	s.conferences = append(s.conferences[:confIndex], s.conferences[confIndex+1:]...)
	return nil
}

func (s *MemoryStore) GetConferencesByIDs(ctx context.Context, ids []model.ID) ([]model.Conference, error) {
	wanted := make(map[model.ID]bool, len(ids))
	for _, id := range ids {
		if _, err := id.ObjectID(); err != nil {
			return nil, err
		}
		wanted[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	conferences := []model.Conference{}
	for _, conf := range s.conferences {
		if wanted[conf.Id] {
			conferences = append(conferences, copyConference(conf))
		}
	}
	return conferences, nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return model.User{}, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
}

func (s *MemoryStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	for _, id := range user.Conferences {
		if _, err := id.ObjectID(); err != nil {
			return model.User{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user.Id = model.NewID()
	user = copyUser(user)
	s.users = append(s.users, user)
	return copyUser(user), nil
}

func (s *MemoryStore) AppendUserConference(ctx context.Context, userId model.ID, conferenceId model.ID) (model.User, error) {
	if _, err := userId.ObjectID(); err != nil {
		return model.User{}, err
	}
	if _, err := conferenceId.ObjectID(); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for userIndex := range s.users {
		if s.users[userIndex].Id == userId {
			s.users[userIndex].Conferences = append(s.users[userIndex].Conferences, conferenceId)
			return copyUser(s.users[userIndex]), nil
		}
	}
	return model.User{}, fmt.Errorf("user %v: %w", userId, ErrNotFound)
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, copyUser(user))
	}
	return users, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id model.ID) error {
	if _, err := id.ObjectID(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for userIndex, user := range s.users {
		if user.Id == id {
			s.users = append(s.users[:userIndex], s.users[userIndex+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) FindAdmin(ctx context.Context, login string) (model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, admin := range s.admins {
		if admin.Login == login {
			return admin, nil
		}
	}
	return model.Admin{}, fmt.Errorf("admin %q: %w", login, ErrNotFound)
}

// conferenceIndex must be called with mu held.
func (s *MemoryStore) conferenceIndex(id model.ID) int {
	for confIndex, conf := range s.conferences {
		if conf.Id == id {
			return confIndex
		}
	}
	return -1
}

func copyConference(conf model.Conference) model.Conference {
	conf.Feedback = append(make([]string, 0, len(conf.Feedback)), conf.Feedback...)
	return conf
}

func copyUser(user model.User) model.User {
	user.Conferences = append(make([]model.ID, 0, len(user.Conferences)), user.Conferences...)
	return user
}
