package domain

import "errors"

// Sentinel errors surfaced by the store and services. Handlers map these to
// HTTP statuses with errors.Is.
var (
	// ErrStudyNotFound indicates the study id does not resolve to a record.
	ErrStudyNotFound = errors.New("study not found")

	// ErrRespondentNotFound indicates the respondent id does not resolve to a record.
	ErrRespondentNotFound = errors.New("respondent not found")

	// ErrResponseExists indicates a (respondent, study) pair already submitted.
	ErrResponseExists = errors.New("response already exists for this respondent and study")

	// ErrEmailExists indicates a respondent with the same email already exists.
	ErrEmailExists = errors.New("respondent email already registered")

	// ErrOTPNotFound indicates no code was requested for the email.
	ErrOTPNotFound = errors.New("otp not found, request a new code")

	// ErrOTPExpired indicates the requested code's TTL has elapsed.
	ErrOTPExpired = errors.New("otp expired, request a new code")

	// ErrOTPInvalid indicates the supplied code does not match.
	ErrOTPInvalid = errors.New("invalid otp")

	// ErrInvalidStudyDates indicates start_date is after end_date.
	ErrInvalidStudyDates = errors.New("start_date must be earlier than or equal to end_date")
)
