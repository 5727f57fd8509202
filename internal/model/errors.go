package model

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateIdentity signals an identity uniqueness conflict.
	ErrDuplicateIdentity = errors.New("identity already exists")
	// ErrDuplicateNickname signals a nickname uniqueness conflict.
	ErrDuplicateNickname = errors.New("nickname already exists")
	// ErrInvalidCredentials signals a failed nickname/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnknownStep signals a step identifier outside the onboarding sequence.
	ErrUnknownStep = errors.New("unknown onboarding step")
	// ErrMalformedRequest signals a request missing required fields.
	ErrMalformedRequest = errors.New("request contains missing fields")
	// ErrInvalidInterval signals a screen visit whose exit precedes its entry
	// or whose markers are missing.
	ErrInvalidInterval = errors.New("invalid screen interval")
	// ErrInvalidParameter signals a malformed query parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
)
