package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conference-webapp/model"
)

const (
	ConferencesCollectionName = "conferences"
	UsersCollectionName       = "users"
	AdminsCollectionName      = "admins"
)

type conferenceDoc struct {
	Id       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Date     string             `bson:"date"`
	Schedule string             `bson:"schedule"`
	Feedback []string           `bson:"feedback"`
}

func (d conferenceDoc) toModel() model.Conference {
	feedback := d.Feedback
	if feedback == nil {
		feedback = []string{}
	}
	return model.Conference{
		Id:       model.ID(d.Id.Hex()),
		Name:     d.Name,
		Date:     d.Date,
		Schedule: d.Schedule,
		Feedback: feedback,
	}
}

type userDoc struct {
	Id          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Email       string               `bson:"email"`
	Conferences []primitive.ObjectID `bson:"conferences"`
}

func (d userDoc) toModel() model.User {
	conferences := make([]model.ID, 0, len(d.Conferences))
	for _, oid := range d.Conferences {
		conferences = append(conferences, model.ID(oid.Hex()))
	}
	return model.User{
		Id:          model.ID(d.Id.Hex()),
		Name:        d.Name,
		Email:       d.Email,
		Conferences: conferences,
	}
}

type adminDoc struct {
	Id             primitive.ObjectID `bson:"_id"`
	Login          string             `bson:"login,omitempty"`
	HashedPassword string             `bson:"password_hash,omitempty"`
	Role           string             `bson:"role,omitempty"`
}

// MongoStore keeps conferences, users and admins in one MongoDB database.
type MongoStore struct {
	client      *mongo.Client
	conferences *mongo.Collection
	users       *mongo.Collection
	admins      *mongo.Collection
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, connString string, dbName string, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	return NewMongoStore(client, dbName), nil
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:      client,
		conferences: db.Collection(ConferencesCollectionName),
		users:       db.Collection(UsersCollectionName),
		admins:      db.Collection(AdminsCollectionName),
	}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) ListConferences(ctx context.Context) ([]model.Conference, error) {
	projection := bson.D{
		{Key: "name", Value: 1},
		{Key: "date", Value: 1},
		{Key: "schedule", Value: 1},
		{Key: "feedback", Value: 1},
	}
	cur, err := s.conferences.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("find conferences: %w", err)
	}
	return decodeConferences(ctx, cur)
}

func (s *MongoStore) CreateConference(ctx context.Context, in model.ConferenceInput) (model.Conference, error) {
	doc := conferenceDoc{
		Id:       primitive.NewObjectID(),
		Name:     in.Name,
		Date:     in.Date,
		Schedule: in.Schedule,
		Feedback: []string{},
	}
	if _, err := s.conferences.InsertOne(ctx, doc); err != nil {
		return model.Conference{}, fmt.Errorf("insert conference: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) UpdateConference(ctx context.Context, id model.ID, in model.ConferenceInput) (model.Conference, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return model.Conference{}, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: in.Name},
		{Key: "date", Value: in.Date},
		{Key: "schedule", Value: in.Schedule},
	}}}
	return s.findOneAndUpdateConference(ctx, oid, update)
}

func (s *MongoStore) AppendFeedback(ctx context.Context, id model.ID, feedback string) (model.Conference, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return model.Conference{}, err
	}

	update := bson.D{{Key: "$push", Value: bson.D{{Key: "feedback", Value: feedback}}}}
	return s.findOneAndUpdateConference(ctx, oid, update)
}

func (s *MongoStore) findOneAndUpdateConference(ctx context.Context, oid primitive.ObjectID, update bson.D) (model.Conference, error) {
	var doc conferenceDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.conferences.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Conference{}, fmt.Errorf("conference %v: %w", oid.Hex(), ErrNotFound)
	}
	if err != nil {
		return model.Conference{}, fmt.Errorf("update conference %v: %w", oid.Hex(), err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) DeleteConference(ctx context.Context, id model.ID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}

	res, err := s.conferences.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete conference %v: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("conference %v: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) GetConferencesByIDs(ctx context.Context, ids []model.ID) ([]model.Conference, error) {
	if len(ids) == 0 {
		return []model.Conference{}, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := id.ObjectID()
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}

	cur, err := s.conferences.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return nil, fmt.Errorf("find conferences by ids: %w", err)
	}
	return decodeConferences(ctx, cur)
}

func decodeConferences(ctx context.Context, cur *mongo.Cursor) ([]model.Conference, error) {
	defer cur.Close(ctx)

	conferences := []model.Conference{}
	for cur.Next(ctx) {
		var doc conferenceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode conference: %w", err)
		}
		conferences = append(conferences, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read conferences: %w", err)
	}
	return conferences, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	doc := userDoc{
		Id:          primitive.NewObjectID(),
		Name:        user.Name,
		Email:       user.Email,
		Conferences: make([]primitive.ObjectID, 0, len(user.Conferences)),
	}
	for _, id := range user.Conferences {
		oid, err := id.ObjectID()
		if err != nil {
			return model.User{}, err
		}
		doc.Conferences = append(doc.Conferences, oid)
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) AppendUserConference(ctx context.Context, userId model.ID, conferenceId model.ID) (model.User, error) {
	uid, err := userId.ObjectID()
	if err != nil {
		return model.User{}, err
	}
	cid, err := conferenceId.ObjectID()
	if err != nil {
		return model.User{}, err
	}

	var doc userDoc
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "conferences", Value: cid}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: uid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, fmt.Errorf("user %v: %w", userId, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("update user %v: %w", userId, err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]model.User, error) {
	cur, err := s.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	users := []model.User{}
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id model.ID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}

	if _, err := s.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete user %v: %w", id, err)
	}
	return nil
}

func (s *MongoStore) FindAdmin(ctx context.Context, login string) (model.Admin, error) {
	var doc adminDoc
	err := s.admins.FindOne(ctx, bson.D{primitive.E{Key: "login", Value: login}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Admin{}, fmt.Errorf("admin %q: %w", login, ErrNotFound)
	}
	if err != nil {
		return model.Admin{}, fmt.Errorf("server side problem occured while reading admin data from database: %w", err)
	}
	return model.Admin{
		Id:             model.ID(doc.Id.Hex()),
		Login:          doc.Login,
		HashedPassword: doc.HashedPassword,
		Role:           doc.Role,
	}, nil
}
