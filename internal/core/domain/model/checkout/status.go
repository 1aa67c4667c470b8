package checkout

import (
	"fmt"

	"bloom/internal/pkg/errs"
)

// State is a step of the submission state machine.
type State int

const (
	// Unknown catches uninitialized values.
	Unknown State = iota
	Idle
	Preparing
	UploadingImages
	CreatingOrder
	Redirecting
	Success
	Failed
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:         "Unknown",
		Idle:            "Idle",
		Preparing:       "Preparing",
		UploadingImages: "UploadingImages",
		CreatingOrder:   "CreatingOrder",
		Redirecting:     "Redirecting",
		Success:         "Success",
		Failed:          "Failed",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("checkout state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the submission has ended.
func (s State) IsTerminal() bool {
	return s == Success || s == Failed
}

// IsActive reports whether a submission is in flight.
func (s State) IsActive() bool {
	return s >= Preparing && s <= Redirecting
}

func (s State) transition(to State, allowed ...State) (State, error) {
	for _, from := range allowed {
		if s == from {
			return to, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"checkout state",
		fmt.Errorf("cannot move from %s to %s", s, to),
	)
}

// Prepare starts a submission. Only an idle checkout can start.
func (s State) Prepare() (State, error) {
	return s.transition(Preparing, Idle)
}

// UploadImages enters the upload step. Re-entering it reports the next image.
func (s State) UploadImages() (State, error) {
	return s.transition(UploadingImages, Preparing, UploadingImages)
}

// CreateOrder follows the uploads, or Preparing directly when there is nothing to upload.
func (s State) CreateOrder() (State, error) {
	return s.transition(CreatingOrder, Preparing, UploadingImages)
}

// Redirect follows a created order.
func (s State) Redirect() (State, error) {
	return s.transition(Redirecting, CreatingOrder)
}

// Succeed ends a submission that has been redirected.
func (s State) Succeed() (State, error) {
	return s.transition(Success, Redirecting)
}

// Fail ends an in-flight submission.
func (s State) Fail() (State, error) {
	return s.transition(Failed, Preparing, UploadingImages, CreatingOrder, Redirecting)
}

// Reset returns a finished checkout to Idle for the next attempt.
func (s State) Reset() (State, error) {
	return s.transition(Idle, Idle, Success, Failed)
}

// Status is a point-in-time view of a submission, reported to observers on every transition.
type Status struct {
	State State
	// Uploaded and Total count images while UploadingImages; Uploaded is 1-based for the image
	// currently being sent.
	Uploaded int
	Total    int
	OrderID  string
	// Message is the user-facing failure text when State is Failed.
	Message string
}

// Progress renders the upload counter as "i/N".
func (s Status) Progress() string {
	return fmt.Sprintf("%d/%d", s.Uploaded, s.Total)
}

func (s Status) String() string {
	if s.State == UploadingImages {
		return fmt.Sprintf("%s(%s)", s.State, s.Progress())
	}
	return s.State.String()
}
