package domain

import "errors"

// Sentinel errors. Services wrap these with %w; the API layer maps them to
// status codes. Ownership violations surface as ErrTradeNotFound so a
// foreign trade id is indistinguishable from a missing one.
var (
	ErrValidation          = errors.New("validation failed")
	ErrTradeNotFound       = errors.New("trade not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("user already exists")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrAnalysisUnavailable = errors.New("analysis unavailable")
)
