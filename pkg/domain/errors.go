package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrModelUnavailable is returned by an intent model that has no trained
// pipeline to predict with. Callers must treat it as an "unknown" intent,
// never as a fatal condition.
var ErrModelUnavailable = errors.New("no intent model available")

// ErrInvalidTravelClass is returned when a travel class outside
// ECONOMY/BUSINESS/FIRST is used.
var ErrInvalidTravelClass = errors.New("invalid travel class")

// ErrUserExists is returned on registration with an already-registered email.
var ErrUserExists = errors.New("email already registered")

// ErrInvalidCredentials is returned on login with a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotAuthenticated is returned when an operation requires a logged-in user.
var ErrNotAuthenticated = errors.New("user not authenticated")

// ErrBookingNotFound is returned when a booking reference cannot be resolved.
var ErrBookingNotFound = errors.New("booking not found")
