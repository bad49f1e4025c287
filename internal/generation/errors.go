package generation

import (
	"errors"
	"fmt"
)

// TransportError reports that the request never produced a usable HTTP
// exchange: dial and timeout failures, unreadable bodies, non-2xx statuses.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not a JSON object carrying a
// string cover_letter field.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid cover letter response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Placeholder returns the text displayed in place of a cover letter when
// generation fails. Transport failures surface their message verbatim.
func Placeholder(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
