package util

import "errors"

var (
	ErrInvalidStep        = errors.New("step must be 1, 2 or 3")
	ErrRetakeNotAllowed   = errors.New("no retake allowed after Fail on Step 1")
	ErrInvalidOptions     = errors.New("options must be an array of 4 non-empty strings")
	ErrInvalidCorrectIdx  = errors.New("correctOptionIndex must be between 0 and 3")
	ErrQuestionLimit      = errors.New("limit reached: max 22 questions per step and level")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailVerified      = errors.New("email already verified")
	ErrEmailNotVerified   = errors.New("user not found, please verify email first")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationNeeded = errors.New("please complete registration first")
	ErrCodeInvalid        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrResultNotFound     = errors.New("result not found")
)
