package domain

import "errors"

// ErrSessionNotFound is returned when no session exists for a user, which is
// how "never submitted intake" is distinguished from "intake on file".
var ErrSessionNotFound = errors.New("session not found")
