package applink

import "fmt"

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// LinkBuildError is returned when the origin cannot be turned into an absolute link.
type LinkBuildError struct {
	Origin string
	Err    error
}

func (e *LinkBuildError) Error() string {
	return fmt.Sprintf("unable to build the app link from %q: %v", e.Origin, e.Err)
}

func (e *LinkBuildError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &ValidationError{Field: field, Reason: "required"}
}
