package extract

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Class partitions generation failures by what the caller can do about
// them. The fallback sequence consults it to decide between trying the
// next model and giving up.
type Class int

const (
	// ClassOther covers transport failures and unrecognized statuses.
	ClassOther Class = iota
	// ClassUnauthorized means the credential is missing or rejected.
	ClassUnauthorized
	// ClassRateLimited means the service throttled the call.
	ClassRateLimited
	// ClassNotFound means the model is unknown or access is denied.
	ClassNotFound
	// ClassEmptyOutput means the call succeeded but produced no text.
	ClassEmptyOutput
	// ClassMalformedJSON means the model's text could not be parsed
	// into an object even after cleanup.
	ClassMalformedJSON
)

func (c Class) String() string {
	switch c {
	case ClassUnauthorized:
		return "unauthorized"
	case ClassRateLimited:
		return "rate-limited"
	case ClassNotFound:
		return "not-found"
	case ClassEmptyOutput:
		return "empty-output"
	case ClassMalformedJSON:
		return "malformed-json"
	default:
		return "other"
	}
}

// Error is a classified generation failure. Status carries the HTTP
// code when one was observed, Model the model that produced it.
type Error struct {
	Class   Class
	Status  int
	Model   string
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("extract: %s (%d): %s", e.Class, e.Status, e.Message)
	}
	return fmt.Sprintf("extract: %s: %s", e.Class, e.Message)
}

// ClassOf extracts the class from any error in err's chain.
// Unclassified errors report ClassOther.
func ClassOf(err error) Class {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Class
	}
	return ClassOther
}

// continuable reports whether the pre-visit sequence may move on to
// the next candidate model after this failure.
func continuable(c Class) bool {
	switch c {
	case ClassNotFound, ClassRateLimited, ClassEmptyOutput, ClassMalformedJSON:
		return true
	default:
		return false
	}
}

// classify maps a raw SDK error onto the outcome taxonomy.
func classify(err error, model string) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}
	status, msg := apiStatus(err)
	e := &Error{Status: status, Model: model, Message: msg}
	switch status {
	case 401:
		e.Class = ClassUnauthorized
	case 429:
		e.Class = ClassRateLimited
	case 403, 404:
		e.Class = ClassNotFound
	default:
		e.Class = ClassOther
	}
	return e
}

// apiStatus pulls the HTTP status and service message out of a genai
// error. The SDK has returned APIError both by value and by pointer
// across versions, so both targets are checked.
func apiStatus(err error) (int, string) {
	var ap *genai.APIError
	if errors.As(err, &ap) {
		return ap.Code, ap.Message
	}
	var av genai.APIError
	if errors.As(err, &av) {
		return av.Code, av.Message
	}
	return 0, err.Error()
}
