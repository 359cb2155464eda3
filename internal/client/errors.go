package client

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("no diary found")
	// ErrTransient covers network failures and server errors that carry no further detail.
	ErrTransient = errors.New("temporary failure, please try again")
	// ErrAuthExpired means the caller is not logged in; recovery belongs to the auth flow.
	ErrAuthExpired = errors.New("not logged in")
)

// ValidationError reports an invalid input field. It is shown next to the field and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindValidation
	KindTransient
	KindAuthExpired
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAuthExpired:
		return "auth_expired"
	default:
		return "transient"
	}
}

// Classify maps any error onto the client error taxonomy. Unknown errors are transient.
func Classify(err error) Kind {
	var ve *ValidationError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAuthExpired), errors.Is(err, ErrUnauthenticated):
		return KindAuthExpired
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &ve):
		return KindValidation
	default:
		return KindTransient
	}
}

// UserMessage is the text surfaced to the user for a failed operation.
func UserMessage(err error, fallback string) string {
	var ve *ValidationError
	switch Classify(err) {
	case KindNone:
		return ""
	case KindAuthExpired:
		return ErrAuthExpired.Error()
	case KindNotFound:
		return ErrNotFound.Error()
	case KindValidation:
		errors.As(err, &ve)
		return ve.Error()
	default:
		if fallback != "" {
			return fallback
		}
		return ErrTransient.Error()
	}
}
