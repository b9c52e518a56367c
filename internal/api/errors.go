package api

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an authenticated call is attempted
// before Login has attached a token.
var ErrNotAuthenticated = errors.New("api: not authenticated")

// AuthError is a non-200 response from the login endpoint.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("failed to get token: %d", e.Status)
	}
	return fmt.Sprintf("failed to get token: %d, %s", e.Status, e.Message)
}

// FetchError is a non-2xx response from any other API endpoint.
type FetchError struct {
	Resource string
	Status   int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d", e.Resource, e.Status)
}
