package model

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMalformedID = errors.New("malformed identifier")

// ID is an opaque store-generated identifier, rendered as ObjectID hex.
type ID string

func NewID() ID {
	return ID(primitive.NewObjectID().Hex())
}

func ParseID(s string) (ID, error) {
	if _, err := primitive.ObjectIDFromHex(s); err != nil {
		return "", fmt.Errorf("%w %q", ErrMalformedID, s)
	}
	return ID(s), nil
}

func (id ID) ObjectID() (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q", ErrMalformedID, string(id))
	}
	return oid, nil
}

func (id ID) String() string {
	return string(id)
}
