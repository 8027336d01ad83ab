package domain

import "errors"

// FieldErrors maps a draft field name to a human-readable validation
// message. An empty set means the draft is submit-eligible.
type FieldErrors map[string]string

// Set records the message for a field, replacing any previous message
func (fe FieldErrors) Set(field, message string) {
	fe[field] = message
}

// Has reports whether the field currently carries an error
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Message returns the error message for a field, or "" if the field is clean
func (fe FieldErrors) Message(field string) string {
	return fe[field]
}

// Empty reports whether the set contains no errors
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Clone returns an independent copy of the error set
func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for field, message := range fe {
		out[field] = message
	}
	return out
}

// SubmissionError is a remote-origin failure surfaced as a single
// human-readable message. Network faults, business-rule rejections and
// malformed gateway responses are all reported through this type.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// NewSubmissionError wraps a display message in a SubmissionError
func NewSubmissionError(message string) *SubmissionError {
	return &SubmissionError{Message: message}
}

// SubmissionMessage extracts the display message from a gateway failure.
// Errors that do not carry one fall back to the provided message so that
// the underlying cause never leaks past the workflow boundary.
func SubmissionMessage(err error, fallback string) string {
	var subErr *SubmissionError
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	return fallback
}
