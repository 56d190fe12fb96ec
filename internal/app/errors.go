package app

// ValidationError reports user-correctable bad input. The message is safe to
// surface to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a registration attempt with a contact value that is
// already taken by an existing subscriber, active or not.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
