package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// CastError reports a request field whose JSON value cannot be stored as text.
type CastError struct {
	Field string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to string failed for field %q", e.Field)
}

func IsCastError(err error) bool {
	var castErr *CastError
	return errors.As(err, &castErr)
}

func (in *ConferenceInput) UnmarshalJSON(data []byte) error {
	return decodeTextFields(data, map[string]*string{
		"name":     &in.Name,
		"date":     &in.Date,
		"schedule": &in.Schedule,
	})
}

func (in *FeedbackInput) UnmarshalJSON(data []byte) error {
	return decodeTextFields(data, map[string]*string{
		"conferenceId": &in.ConferenceId,
		"feedback":     &in.Feedback,
	})
}

func (in *RegisterInput) UnmarshalJSON(data []byte) error {
	return decodeTextFields(data, map[string]*string{
		"name":         &in.Name,
		"email":        &in.Email,
		"conferenceId": &in.ConferenceId,
	})
}

// decodeTextFields reads the named keys of a JSON object as text. Numbers
// and booleans are stringified, null and missing keys leave "", objects and
// arrays fail with a CastError.
func decodeTextFields(data []byte, fields map[string]*string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		text, ok := castText(value)
		if !ok {
			return &CastError{Field: key}
		}
		*dst = text
	}
	return nil
}

func castText(raw json.RawMessage) (string, bool) {
	var value interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return "", false
	}

	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v.String(), true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
