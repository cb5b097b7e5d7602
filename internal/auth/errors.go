package auth

import "errors"

// ErrorCode is the closed set of auth failure codes. Anything outside the
// enumeration renders as the generic fallback.
type ErrorCode string

const (
	CodeInvalidCredentials ErrorCode = "auth/invalid-credential"
	CodeUserNotFound       ErrorCode = "auth/user-not-found"
	CodeEmailTaken         ErrorCode = "auth/email-already-in-use"
	CodeWeakPassword       ErrorCode = "auth/weak-password"
	CodeInvalidEmail       ErrorCode = "auth/invalid-email"
	CodeUnknown            ErrorCode = "auth/unknown"
)

// Error is a credential or session problem surfaced to the user as an inline
// form error rather than a crash.
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string { return string(e.Code) }

// Friendly maps an error code to display text. Total over the enumeration
// with an explicit default arm for anything unmapped.
func Friendly(code ErrorCode) string {
	switch code {
	case CodeInvalidCredentials:
		return "Incorrect email or password."
	case CodeUserNotFound:
		return "No account found for that email."
	case CodeEmailTaken:
		return "An account with that email already exists."
	case CodeWeakPassword:
		return "Password must be at least 6 characters."
	case CodeInvalidEmail:
		return "Please enter a valid email."
	case CodeUnknown:
		return "Something went wrong. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// FriendlyError renders any error for the sign-in/sign-up forms, falling
// back to the generic message for non-auth failures.
func FriendlyError(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return Friendly(ae.Code)
	}

	return Friendly(CodeUnknown)
}
