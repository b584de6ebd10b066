package setup

import (
	"errors"
	"fmt"
)

const (
	CodeMissingUserID        = "MISSING_USER_ID"
	CodeIdentityLookupFailed = "IDENTITY_LOOKUP_FAILED"
	CodeStoreWriteFailed     = "STORE_WRITE_FAILED"
	CodeConfigurationMissing = "CONFIGURATION_MISSING"
)

// MissingUserIDMessage is reported when the inbound event has no user id.
const MissingUserIDMessage = "No userId provided in event"

var ErrRecordNotFound = errors.New("record not found")

// Failure is an error that aborts a setup run
type Failure struct {
	Reason string
	Code   string
	Err    error
}

func (e *Failure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Failure) Unwrap() error {
	return e.Err
}

// FailureCode returns the failure code carried by err, or an empty string.
func FailureCode(err error) string {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Code
	}
	return ""
}

// IsFailureCode reports whether err is a Failure with the passed code.
func IsFailureCode(err error, code string) bool {
	return FailureCode(err) == code
}

func missingUserID() *Failure {
	return &Failure{
		Reason: MissingUserIDMessage,
		Code:   CodeMissingUserID,
	}
}

func identityLookupFailed(userID string, err error) *Failure {
	return &Failure{
		Reason: fmt.Sprintf("identity lookup failed for %s", userID),
		Code:   CodeIdentityLookupFailed,
		Err:    err,
	}
}

func storeWriteFailed(kind Kind, err error) *Failure {
	return &Failure{
		Reason: fmt.Sprintf("failed to create %s", kind),
		Code:   CodeStoreWriteFailed,
		Err:    err,
	}
}

func configurationMissing(name string) *Failure {
	return &Failure{
		Reason: fmt.Sprintf("%s is not configured", name),
		Code:   CodeConfigurationMissing,
	}
}
