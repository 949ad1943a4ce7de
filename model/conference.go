package model

type Conference struct {
	Id       ID       `json:"_id"`
	Name     string   `json:"name"`
	Date     string   `json:"date"`
	Schedule string   `json:"schedule"`
	Feedback []string `json:"feedback"`
}

// ConferenceInput carries the replaceable fields of a conference.
// Keys missing from the request body are kept as empty strings.
type ConferenceInput struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Schedule string `json:"schedule"`
}

type FeedbackInput struct {
	ConferenceId string `json:"conferenceId"`
	Feedback     string `json:"feedback"`
}
