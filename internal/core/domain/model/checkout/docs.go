// Package checkout models a single order submission: the state machine it moves through, the
// OrderDraft assembled from a cart snapshot, and the errors a submission can end with.
//
// State transitions:
//
//	Idle ──> Preparing ──┬──> UploadingImages(i/N) ──┐
//	                     └───────────────────────────┴──> CreatingOrder ──> Redirecting ──> Success
//
//	any non-terminal state after Idle ──> Failed
//	Success | Failed ──> Idle (next attempt)
package checkout
