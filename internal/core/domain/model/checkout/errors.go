package checkout

import (
	"errors"
	"strings"
)

// UserFailureMessage is the one message shown when a submission fails. The cause is logged.
const UserFailureMessage = "We could not place your order. Your cart has not changed, please try again."

var (
	// ErrCheckoutBlocked is matched by BlockedError.
	ErrCheckoutBlocked = errors.New("checkout is blocked")
	// ErrSubmissionFailed is matched by SubmissionError.
	ErrSubmissionFailed = errors.New("order submission failed")
	// ErrConfiguration is matched by ConfigurationError.
	ErrConfiguration = errors.New("checkout is not configured")
	// ErrCheckoutInProgress is returned when a submission starts while another is in flight.
	ErrCheckoutInProgress = errors.New("checkout is already in progress")
)

// BlockedError carries the blocking messages that kept a submission from starting.
type BlockedError struct {
	Messages []string
}

func NewBlockedError(messages []string) *BlockedError {
	return &BlockedError{Messages: append([]string{}, messages...)}
}

func (e *BlockedError) Error() string {
	return ErrCheckoutBlocked.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *BlockedError) Unwrap() error {
	return ErrCheckoutBlocked
}

// SubmissionError ends a submission in Failed. Error returns the user-facing message only; the
// cause stays reachable through errors.Is and errors.As.
type SubmissionError struct {
	Step  State
	Cause error
}

func NewSubmissionError(step State, cause error) *SubmissionError {
	return &SubmissionError{Step: step, Cause: cause}
}

func (e *SubmissionError) Error() string {
	return UserFailureMessage
}

func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmissionFailed, e.Cause}
}

// ConfigurationError names missing endpoint settings. It is raised before any network call.
type ConfigurationError struct {
	Missing []string
}

func NewConfigurationError(missing ...string) *ConfigurationError {
	return &ConfigurationError{Missing: missing}
}

func (e *ConfigurationError) Error() string {
	return ErrConfiguration.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
