package gemini

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// StatusError is a non-200 answer from the generateContent endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini %d: %s", e.Code, e.Body)
}

func (e *StatusError) StatusCode() int { return e.Code }

// asStatusError lifts a googleapi.Error (SDK path) into a StatusError so the
// fallback engine can classify both transports the same way.
func asStatusError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Message
		if body == "" {
			body = gerr.Body
		}
		return &StatusError{Code: gerr.Code, Body: body}
	}
	return err
}
