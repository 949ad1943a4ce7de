package model

// User is an attendee. Conferences holds raw references in registration
// order; duplicates are kept.
type User struct {
	Id          ID     `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Conferences []ID   `json:"conferences"`
}

// Registration is a User with its conference references resolved.
type Registration struct {
	Id          ID           `json:"_id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Conferences []Conference `json:"conferences"`
}

type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ConferenceId string `json:"conferenceId"`
}
