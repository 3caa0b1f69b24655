// Package model defines the domain types used across the application.
package model

// Response is the decoded payload of the homework statuses endpoint.
type Response struct {
	Homeworks []Homework `json:"homeworks"`
	// CurrentDate is the server-side cursor echoed back by the API.
	// Nil when the payload does not carry it.
	CurrentDate *int64 `json:"current_date,omitempty"`
}

// Homework is a single submission record. Fields are pointers so that an
// absent key can be told apart from an empty value.
type Homework struct {
	HomeworkName *string `json:"homework_name"`
	Status       *string `json:"status"`
}

// Latest returns the most recent submission and false when there is none.
func (r *Response) Latest() (Homework, bool) {
	if len(r.Homeworks) == 0 {
		return Homework{}, false
	}
	return r.Homeworks[0], true
}
