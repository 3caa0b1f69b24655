package practicum

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError is returned when the request could not be completed.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("endpoint %s is unavailable: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UnexpectedStatusError is returned when the API answers with a non-200 code.
type UnexpectedStatusError struct {
	Code     int
	Endpoint string
	FromDate int64
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s (from_date=%d)", e.Code, e.Endpoint, e.FromDate)
}

// RemoteError is the API's own error envelope returned with a 200 response.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, "code="+e.Code)
	}
	if e.Message != "" {
		parts = append(parts, "error="+e.Message)
	}
	return "api reported an error: " + strings.Join(parts, " ")
}

// DecodeError is returned when the response body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode response: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind enumerates structural validation failures.
type Kind int

// Structural failure kinds.
const (
	KindNotAMapping Kind = iota + 1
	KindMissingKey
	KindWrongType
)

// Sentinels matched by StructuralError.Is.
var (
	ErrNotAMapping = errors.New("response is not a JSON object")
	ErrMissingKey  = errors.New("response is missing a required key")
	ErrWrongType   = errors.New("response key has wrong type")
)

// StructuralError reports a payload that does not have the documented shape.
type StructuralError struct {
	Kind Kind
	Key  string
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case KindNotAMapping:
		return ErrNotAMapping.Error()
	case KindMissingKey:
		return fmt.Sprintf("%s: %s", ErrMissingKey, e.Key)
	case KindWrongType:
		return fmt.Sprintf("%s: %s", ErrWrongType, e.Key)
	default:
		return "invalid response structure"
	}
}

// Is lets callers match on the sentinel for the failure kind.
func (e *StructuralError) Is(target error) bool {
	switch target {
	case ErrNotAMapping:
		return e.Kind == KindNotAMapping
	case ErrMissingKey:
		return e.Kind == KindMissingKey
	case ErrWrongType:
		return e.Kind == KindWrongType
	}
	return false
}
