// Package homework turns homework records into human-readable verdict messages.
package homework

import (
	"fmt"
	"strings"

	"homework_bot/internal/model"
)

// Status is a review status keyword reported by the API.
type Status string

// Known review statuses.
const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the sentence for a known status.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// MissingFieldError reports every required field absent from a record.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "homework record is missing required fields: " + strings.Join(e.Fields, ", ")
}

// UnknownStatusError is returned for a status outside the verdict vocabulary.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}

// Extract builds the status-change message for a homework record.
func Extract(hw model.Homework) (string, error) {
	var missing []string
	if hw.HomeworkName == nil {
		missing = append(missing, "homework_name")
	}
	if hw.Status == nil {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return "", &MissingFieldError{Fields: missing}
	}

	verdict, ok := Verdict(Status(*hw.Status))
	if !ok {
		return "", &UnknownStatusError{Status: *hw.Status}
	}
	return fmt.Sprintf("Status changed for submission \"%s\". %s", *hw.HomeworkName, verdict), nil
}
